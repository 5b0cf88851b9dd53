package config

import "time"

// GetDefaultConfig returns a Config with all default values applied.
// Useful for generating sample configuration files and tests.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields of cfg with their defaults.
// Fields already set (e.g. by a partially populated config file) are left
// untouched.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 6379
	}

	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "0.0.0.0"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}

	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = "localhost:4317"
	}
	if cfg.Tracing.SampleRate == 0 {
		cfg.Tracing.SampleRate = 1.0
	}

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
}
