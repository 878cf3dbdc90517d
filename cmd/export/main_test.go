package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/config"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/internal/shared/testutil"
	"github.com/Divaagar-RB/TNEA-provisional-allotment-analysis/pkg/contracts/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	base := t.TempDir()
	dataset := testutil.WriteSampleDataset(t, base)
	outDir := filepath.Join(base, "out")

	stdout, err := execute(t,
		"--base-dir", base,
		"--dataset", dataset,
		"--out", outDir,
		"--min-total", "0",
		"--top", "3")
	require.NoError(t, err)

	written := strings.Fields(stdout)
	assert.Len(t, written, 1+4+15)
	assert.Equal(t, filepath.Join(outDir, config.WorkbookFileName), written[0])
	for _, p := range written {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestExportCommand_MissingDataset(t *testing.T) {
	base := t.TempDir()

	_, err := execute(t,
		"--base-dir", base,
		"--dataset", filepath.Join(base, "absent.csv"),
		"--out", filepath.Join(base, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset unavailable")
}

func TestSummaryCommand(t *testing.T) {
	base := t.TempDir()
	dataset := testutil.WriteSampleDataset(t, base)

	stdout, err := execute(t, "summary", "--base-dir", base, "--dataset", dataset)
	require.NoError(t, err)

	var summary domain.DatasetSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, dataset, summary.Source)
	assert.Positive(t, summary.Retained)
	assert.Len(t, summary.Version, 12)
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name   string
		opts   options
		verify func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "defaults untouched",
			opts: options{minTotal: 1, topN: 2},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.DefaultDatasetFile, cfg.Paths.DatasetFile)
				assert.Equal(t, config.DefaultMinBranchTotal, cfg.Analytics.MinBranchTotal)
				assert.Equal(t, config.DefaultTopBranches, cfg.Analytics.TopBranches)
				assert.Equal(t, "warn", cfg.Logging.Level)
			},
		},
		{
			name: "explicit flags win",
			opts: options{dataset: "in.xlsx", sheet: "2025", logLevel: "debug", minTotal: 0, minTotalSet: true, topN: 5, topNSet: true},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.True(t, filepath.IsAbs(cfg.Paths.DatasetFile))
				assert.Equal(t, "in.xlsx", filepath.Base(cfg.Paths.DatasetFile))
				assert.Equal(t, "2025", cfg.Analytics.Sheet)
				assert.Equal(t, 0, cfg.Analytics.MinBranchTotal)
				assert.Equal(t, 5, cfg.Analytics.TopBranches)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			opts := tt.opts
			require.NoError(t, applyOverrides(cfg, &opts))
			assert.False(t, cfg.Telemetry.MetricsEnabled)
			tt.verify(t, cfg)
		})
	}
}
