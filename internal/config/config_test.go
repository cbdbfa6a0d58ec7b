package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "numtools", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Telemetry)
	assert.Equal(t, 8, cfg.Search.MaxOperands)
	assert.Equal(t, 10*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 1, cfg.Search.Workers)
	assert.Equal(t, 10000, cfg.Gaps.MaxMissing)
}

func TestCLIDefaultHasNoLimits(t *testing.T) {
	cfg := CLIDefault()

	assert.Equal(t, Search{Workers: 1}, cfg.Search)
	assert.Equal(t, Gaps{}, cfg.Gaps)
	assert.Equal(t, Default().LogLevel, cfg.LogLevel)
}

func TestLoadFromKeepsBaseUnlessOverridden(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvSearchMaxOperands, "")
	t.Setenv(EnvSearchTimeout, "")

	cfg, err := LoadFrom(CLIDefault(), "")
	require.NoError(t, err)
	assert.Zero(t, cfg.Search.MaxOperands)
	assert.Zero(t, cfg.Search.Timeout)

	t.Setenv(EnvSearchMaxOperands, "3")
	cfg, err = LoadFrom(CLIDefault(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Search.MaxOperands)

	path := writeFile(t, "numtools.yaml", "search:\n  timeout: 1s\n")
	cfg, err = LoadFrom(CLIDefault(), path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Search.Timeout)
}

func TestMergeFile(t *testing.T) {
	path := writeFile(t, "numtools.yaml", `
addr: ":9090"
log_level: debug
telemetry: true
search:
  max_operands: 6
  timeout: 2s
  workers: 4
`)

	cfg := Default()
	require.NoError(t, cfg.mergeFile(path))

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Telemetry)
	assert.Equal(t, 6, cfg.Search.MaxOperands)
	assert.Equal(t, 2*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 4, cfg.Search.Workers)
	// Untouched keys keep their defaults.
	assert.Equal(t, "numtools", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestMergeFileErrors(t *testing.T) {
	cfg := Default()

	err := cfg.mergeFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")

	path := writeFile(t, "bad.yaml", "search: [not, a, map]\n")
	err = cfg.mergeFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestMergeEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:              ":7000",
		EnvServiceName:       "numtools-test",
		EnvTelemetry:         "true",
		EnvSearchTimeout:     "250ms",
		EnvSearchMaxOperands: "5",
		EnvSearchWorkers:     "2",
		EnvSearchNodeBudget:  "100000",
		EnvGapsMaxMissing:    "50",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.mergeEnv(lookup))

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "numtools-test", cfg.ServiceName)
	assert.True(t, cfg.Telemetry)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Timeout)
	assert.Equal(t, 5, cfg.Search.MaxOperands)
	assert.Equal(t, 2, cfg.Search.Workers)
	assert.Equal(t, int64(100000), cfg.Search.NodeBudget)
	assert.Equal(t, 50, cfg.Gaps.MaxMissing)
}

func TestMergeEnvInvalidValues(t *testing.T) {
	tests := map[string]string{
		EnvTelemetry:         "maybe",
		EnvSearchTimeout:     "soon",
		EnvSearchMaxOperands: "eight",
		EnvSearchNodeBudget:  "lots",
		EnvGapsMaxMissing:    "many",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == key {
					return value, true
				}
				return "", false
			}

			cfg := Default()
			err := cfg.mergeEnv(lookup)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	path := writeFile(t, "numtools.yaml", "addr: \":9090\"\nlog_level: warn\n")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadUsesConfigFileFromEnv(t *testing.T) {
	path := writeFile(t, "numtools.yaml", "service_name: from-file\n")
	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvServiceName, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ServiceName)
}
