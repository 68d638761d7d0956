package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, ValidateConfig(cfg))
	assert.InDelta(t, 30.0, cfg.Simulation.TickRate, 1e-9)
	assert.True(t, cfg.Simulation.StartingColony)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homebound.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation:
  tick_rate: 60
  starting_colony: false
  colony_name: Kepler
logging:
  level: debug
metrics:
  enabled: true
`), 0o600))

	t.Setenv("HOMEBOUND_SERVER_ADDRESS", "0.0.0.0:9090")
	t.Setenv("HOMEBOUND_LOGGING_FORMAT", "json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 60.0, cfg.Simulation.TickRate, 1e-9)
	assert.False(t, cfg.Simulation.StartingColony)
	assert.Equal(t, "Kepler", cfg.Simulation.ColonyName)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Address)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Simulation.StartingColony)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative tick rate", "simulation:\n  tick_rate: -1\n"},
		{"unknown level", "logging:\n  level: verbose\n"},
		{"file output", "logging:\n  output: file\n"},
		{"relative metrics path", "metrics:\n  path: metrics\n"},
		{"bad address", "server:\n  address: nowhere\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "homebound.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
