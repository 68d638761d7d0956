// Package config loads homebound settings from defaults, an optional YAML file,
// a .env file and HOMEBOUND_ environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// SimulationConfig controls the live colony
type SimulationConfig struct {
	// Ticks per second; every tick advances the colony by 1/TickRate seconds
	TickRate float64 `mapstructure:"tick_rate" validate:"gt=0,lte=1000"`

	// Directory holding the catalog JSON files. Empty uses the embedded catalog.
	DataDir string `mapstructure:"data_dir"`

	// Start from the fixed starter layout instead of a lone headquarters
	StartingColony bool `mapstructure:"starting_colony"`

	ColonyName string `mapstructure:"colony_name" validate:"required"`
}

// ServerConfig holds the HTTP adapter settings
type ServerConfig struct {
	Address         string        `mapstructure:"address" validate:"required,hostname_port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output destination: stdout, stderr
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr"`
}

// MetricsConfig holds metrics exposure configuration
type MetricsConfig struct {
	// Enabled mounts the Prometheus endpoint on the HTTP server
	Enabled bool `mapstructure:"enabled"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path" validate:"required,startswith=/"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (homebound.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("homebound")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("HOMEBOUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment variables are only consulted for keys viper knows about
	seedDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration holding only default values
func Default() *Config {
	cfg := &Config{
		Simulation: SimulationConfig{StartingColony: true},
	}
	SetDefaults(cfg)
	return cfg
}

func seedDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("simulation.tick_rate", d.Simulation.TickRate)
	v.SetDefault("simulation.data_dir", d.Simulation.DataDir)
	v.SetDefault("simulation.starting_colony", d.Simulation.StartingColony)
	v.SetDefault("simulation.colony_name", d.Simulation.ColonyName)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}
