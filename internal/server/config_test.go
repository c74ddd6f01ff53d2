package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

engine {
  workers             = 4
  parallel_threshold  = 5000
  batch_size          = 250
  default_samples     = 50000
  max_samples         = 500000
  sim_timeout_seconds = 30
}
`
	path := filepath.Join(t.TempDir(), "advisor.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())

	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, 5000, cfg.Engine.ParallelThreshold)
	assert.Equal(t, 250, cfg.Engine.BatchSize)
	assert.Equal(t, 50000, cfg.Engine.DefaultSamples)
	assert.Equal(t, 500000, cfg.Engine.MaxSamples)
	assert.Equal(t, 30, cfg.Engine.SimTimeoutSeconds)
}

func TestLoadConfigPartialFile(t *testing.T) {
	content := `
server {
  port = 9100
}

engine {}
`
	path := filepath.Join(t.TempDir(), "partial.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Unset fields fall back to defaults
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 100_000, cfg.Engine.DefaultSamples)
	assert.Equal(t, 2_000_000, cfg.Engine.MaxSamples)
}

func TestLoadConfigInvalidHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "trace" }, true},
		{"negative workers", func(c *Config) { c.Engine.Workers = -1 }, true},
		{"zero default samples", func(c *Config) { c.Engine.DefaultSamples = 0 }, true},
		{"max below default", func(c *Config) { c.Engine.MaxSamples = 10 }, true},
		{"negative timeout", func(c *Config) { c.Engine.SimTimeoutSeconds = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
