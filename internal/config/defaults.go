package config

import "time"

// SetDefaults sets default values for every zero-valued field.
// Booleans keep whatever the caller set.
func SetDefaults(cfg *Config) {
	// Simulation defaults
	if cfg.Simulation.TickRate == 0 {
		cfg.Simulation.TickRate = 30
	}
	if cfg.Simulation.ColonyName == "" {
		cfg.Simulation.ColonyName = "Homebound"
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
