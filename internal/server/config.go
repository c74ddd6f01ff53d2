package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete advisor server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Engine EngineSettings `hcl:"engine,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// EngineSettings tunes the simulation engine behind the service
type EngineSettings struct {
	Workers           int `hcl:"workers,optional"`
	ParallelThreshold int `hcl:"parallel_threshold,optional"`
	BatchSize         int `hcl:"batch_size,optional"`
	DefaultSamples    int `hcl:"default_samples,optional"`
	MaxSamples        int `hcl:"max_samples,optional"`
	SimTimeoutSeconds int `hcl:"sim_timeout_seconds,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8844,
			LogLevel: "info",
		},
		Engine: EngineSettings{
			DefaultSamples:    100_000,
			MaxSamples:        2_000_000,
			SimTimeoutSeconds: 120,
		},
	}
}

// LoadConfig loads configuration from an HCL file, returning defaults
// when the file does not exist
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Server.Address == "" {
		cfg.Server.Address = def.Server.Address
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = def.Server.LogLevel
	}
	if cfg.Engine.DefaultSamples == 0 {
		cfg.Engine.DefaultSamples = def.Engine.DefaultSamples
	}
	if cfg.Engine.MaxSamples == 0 {
		cfg.Engine.MaxSamples = def.Engine.MaxSamples
	}
	if cfg.Engine.SimTimeoutSeconds == 0 {
		cfg.Engine.SimTimeoutSeconds = def.Engine.SimTimeoutSeconds
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Engine.Workers)
	}
	if c.Engine.DefaultSamples < 1 {
		return fmt.Errorf("default_samples must be positive, got %d", c.Engine.DefaultSamples)
	}
	if c.Engine.MaxSamples < c.Engine.DefaultSamples {
		return fmt.Errorf("max_samples (%d) must be at least default_samples (%d)",
			c.Engine.MaxSamples, c.Engine.DefaultSamples)
	}
	if c.Engine.SimTimeoutSeconds < 0 {
		return fmt.Errorf("sim_timeout_seconds must be non-negative, got %d", c.Engine.SimTimeoutSeconds)
	}
	return nil
}

// Addr returns the full listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
