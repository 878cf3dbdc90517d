package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the resolved application paths
type Paths struct {
	BaseDir     string
	DataDir     string
	DatasetFile string
	LogsDir     string
	ExportDir   string
	LogFile     string
}

// Resolve turns the configured paths into absolute paths. Relative entries
// are joined onto BaseDir, which defaults to the working directory. A
// relative dataset file is looked up inside DataDir.
func (c *Config) Resolve() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	join := func(root, p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(root, p)
	}

	dataDir := join(base, c.Paths.DataDir)
	return &Paths{
		BaseDir:     base,
		DataDir:     dataDir,
		DatasetFile: join(dataDir, c.Paths.DatasetFile),
		LogsDir:     join(base, c.Paths.LogsDir),
		ExportDir:   join(base, c.Paths.ExportDir),
		LogFile:     join(base, c.Logging.FilePath),
	}, nil
}

// EnsureDirectories creates the writable directories if they don't exist.
// The data directory is read-only input and is never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.LogsDir, p.ExportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// LogPathResolution logs the resolved layout at debug level.
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved application paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("dataset_file", p.DatasetFile),
		slog.Bool("dataset_exists", FileExists(p.DatasetFile)),
		slog.String("logs_dir", p.LogsDir),
		slog.String("export_dir", p.ExportDir))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
