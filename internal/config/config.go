package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the textcase service
type Config struct {
	// Server configuration
	HTTPPort int    `env:"TEXTCASE_HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"TEXTCASE_GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Optional listeners and endpoints
	GRPCEnabled    bool `env:"TEXTCASE_GRPC_ENABLED" envDefault:"true"`
	MetricsEnabled bool `env:"TEXTCASE_METRICS_ENABLED" envDefault:"true"`

	// Timeouts
	Timeouts TimeoutConfig
}

// TimeoutConfig holds the HTTP server and shutdown timeouts
type TimeoutConfig struct {
	ReadHeaderTimeout time.Duration `env:"TEXTCASE_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"TEXTCASE_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"TEXTCASE_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"TEXTCASE_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"TEXTCASE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return LoadWithOptions(env.Options{})
}

// LoadWithOptions reads configuration using the given env options.
// Tests pass Environment to avoid touching the process environment.
func LoadWithOptions(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCEnabled {
		if c.GRPCPort < 1 || c.GRPCPort > 65535 {
			return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
		}
		if c.GRPCPort == c.HTTPPort {
			return fmt.Errorf("gRPC port %d collides with HTTP port", c.GRPCPort)
		}
	}

	// Validate timeouts
	timeouts := map[string]time.Duration{
		"read header": c.Timeouts.ReadHeaderTimeout,
		"read":        c.Timeouts.ReadTimeout,
		"write":       c.Timeouts.WriteTimeout,
		"idle":        c.Timeouts.IdleTimeout,
		"shutdown":    c.Timeouts.ShutdownTimeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s timeout must be positive, got %s", name, d)
		}
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}
