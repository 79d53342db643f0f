package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sched-metrics/internal/schedulers"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `port: 8080
log_level: debug
test_dir: cases
output_csv: out.csv
simulator_timeout: 5s
schedulers:
  - name: RR
    binary: ./bin/rr
  - name: FCFS
    binary: ./bin/fcfs
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "cases", cfg.TestDir)
	assert.Equal(t, ".", cfg.WorkDir)
	assert.Equal(t, "out.csv", cfg.OutputCSV)
	assert.Equal(t, 5*time.Second, cfg.SimulatorTimeout)
	assert.Equal(t, []schedulers.Variant{
		{Name: "RR", Binary: "./bin/rr"},
		{Name: "FCFS", Binary: "./bin/fcfs"},
	}, cfg.Schedulers)
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "testing", cfg.TestDir)
	assert.Equal(t, "final_metrics.csv", cfg.OutputCSV)
	assert.Equal(t, 60*time.Second, cfg.SimulatorTimeout)
	assert.Empty(t, cfg.CollectorURL)
	assert.Equal(t, schedulers.DefaultVariants(), cfg.Schedulers)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("test_dir: cases\n"), 0o644))
	t.Setenv("SCHEDMETRICS_TEST_DIR", "other")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.TestDir)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [1, 2\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9095, cfg.Port)
	assert.Equal(t, schedulers.DefaultVariants(), cfg.Schedulers)
}
