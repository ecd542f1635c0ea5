package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(vars map[string]string) (*Config, error) {
	return LoadWithOptions(env.Options{Environment: vars})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.GRPCEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.ShutdownTimeout)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	assert.Equal(t, ":9090", cfg.GetGRPCAddr())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(map[string]string{
		"TEXTCASE_HTTP_PORT":       "5000",
		"TEXTCASE_GRPC_ENABLED":    "false",
		"TEXTCASE_METRICS_ENABLED": "false",
		"TEXTCASE_WRITE_TIMEOUT":   "2s",
		"LOG_LEVEL":                "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.False(t, cfg.GRPCEnabled)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 2*time.Second, cfg.Timeouts.WriteTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"port out of range", map[string]string{"TEXTCASE_HTTP_PORT": "70000"}, "invalid HTTP port"},
		{"zero grpc port", map[string]string{"TEXTCASE_GRPC_PORT": "0"}, "invalid gRPC port"},
		{"port collision", map[string]string{"TEXTCASE_HTTP_PORT": "9090"}, "collides"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "invalid log level"},
		{"zero timeout", map[string]string{"TEXTCASE_IDLE_TIMEOUT": "0s"}, "idle timeout"},
		{"unparsable port", map[string]string{"TEXTCASE_HTTP_PORT": "http"}, "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_GRPCPortIgnoredWhenDisabled(t *testing.T) {
	cfg, err := load(map[string]string{
		"TEXTCASE_GRPC_ENABLED": "false",
		"TEXTCASE_GRPC_PORT":    "8080",
	})
	require.NoError(t, err)
	assert.False(t, cfg.GRPCEnabled)
}
