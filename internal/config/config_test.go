package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/errors"
)

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPort, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, DefaultDatasetFile, cfg.Paths.DatasetFile)
				assert.Equal(t, 180, cfg.Analytics.MinBranchTotal)
				assert.Equal(t, 8, cfg.Analytics.TopBranches)
				assert.False(t, cfg.Analytics.Preload)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 9090
analytics:
  preload: true
  min_branch_total: 50
paths:
  dataset_file: allotments.xlsx
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.True(t, cfg.Analytics.Preload)
				assert.Equal(t, 50, cfg.Analytics.MinBranchTotal)
				assert.Equal(t, "allotments.xlsx", cfg.Paths.DatasetFile)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "keys absent from the file keep defaults")
			},
		},
		{
			name: "env overrides file",
			file: "server:\n  port: 9090\n",
			env: map[string]string{
				"TNEA_SERVER_PORT":                "7070",
				"TNEA_ANALYTICS_CACHE_PAYLOADS":   "true",
				"TNEA_SECURITY_ALLOWED_ORIGINS":   "http://a.example,http://b.example",
				"TNEA_TELEMETRY_TRACE_EXPORTER":   "stdout",
				"TNEA_SERVER_REQUEST_TIMEOUT":     "5s",
				"TNEA_ANALYTICS_MIN_BRANCH_TOTAL": "0",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.True(t, cfg.Analytics.CachePayloads)
				assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
				assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, 0, cfg.Analytics.MinBranchTotal)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"TNEA_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"TNEA_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "invalid trace exporter",
			file:    "telemetry:\n  trace_exporter: jaeger\n",
			wantErr: true,
		},
		{
			name:    "malformed file",
			file:    "server: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			t.Setenv(ConfigFileEnv, "")

			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.file), 0o644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				var appErr *apierrors.AppError
				require.True(t, errors.As(err, &appErr), "got %v", err)
				assert.Equal(t, apierrors.ErrTypeConfig, appErr.Type)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(*Config) {}, false},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"cors without origins", func(c *Config) { c.Security.AllowedOrigins = nil }, true},
		{"cors disabled without origins", func(c *Config) {
			c.Security.EnableCORS = false
			c.Security.AllowedOrigins = nil
		}, false},
		{"file output without path", func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = ""
		}, true},
		{"negative threshold", func(c *Config) { c.Analytics.MinBranchTotal = -1 }, true},
		{"zero top branches", func(c *Config) { c.Analytics.TopBranches = 0 }, true},
		{"missing dataset file", func(c *Config) { c.Paths.DatasetFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
