// Package config loads respkv's configuration from environment, file, and
// defaults, in that order of decreasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents respkv's static configuration: logging, the TCP
// listener, the admin HTTP endpoint, and distributed tracing.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (RESPKV_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// Environment variables override only keys that the configuration file
// sets; when no file is found, Load returns the defaults and does not read
// the environment.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Server controls the RESP TCP listener.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Metrics controls the admin HTTP server and Prometheus registry.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Tracing controls OpenTelemetry distributed tracing.
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`

	// ShutdownTimeout bounds how long graceful shutdown waits for
	// outstanding connections to finish on their own.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format.
	// Valid values: text, json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written.
	// Valid values: stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// ServerConfig controls the RESP TCP listener.
type ServerConfig struct {
	// Host is the address the TCP listener binds to.
	Host string `mapstructure:"host" validate:"required" yaml:"host"`

	// Port is the TCP port the RESP server listens on.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535" yaml:"port"`
}

// Addr returns the host:port pair net.Listen expects.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsConfig controls the admin HTTP server (/healthz, /metrics).
type MetricsConfig struct {
	// Enabled controls whether the admin HTTP server and Prometheus
	// registry are active.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Host is the address the admin HTTP server binds to.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the admin HTTP server's listen port.
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// Addr returns the host:port pair net.Listen expects.
func (m MetricsConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// TracingConfig controls OpenTelemetry distributed tracing.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure controls whether to use an insecure (non-TLS) connection.
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// Load loads configuration from file, environment, and defaults.
//
// configPath is the path to a config file; an empty string searches the
// default location ($XDG_CONFIG_HOME/respkv/config.yaml). If no file is
// found, Load returns GetDefaultConfig() without reading RESPKV_*
// variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		return GetDefaultConfig(), nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration, returning a user-friendly error if the
// explicitly requested file does not exist.
func MustLoad(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path in YAML format.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper wires environment variable support (RESPKV_* prefix) and
// config file discovery.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("RESPKV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists. Returns
// (fileFound, error).
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// durationDecodeHook converts strings and numbers to time.Duration so
// config files and environment variables can use "30s"/"5m" style values.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory, honoring
// XDG_CONFIG_HOME and falling back to ~/.config.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "respkv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "respkv")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the
// default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}
