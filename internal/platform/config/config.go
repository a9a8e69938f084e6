// Package config provides configuration loading and validation for opscheck.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// GroupsKey is the configuration prefix under which check groups are defined,
// one key per group with a comma-separated list of check names:
//
//	checks:
//	  groups:
//	    storage: "db,cache"
const GroupsKey = "checks.groups"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Checks    ChecksConfig    `koanf:"checks"`
	Probes    ProbesConfig    `koanf:"probes"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds one evaluation request end to end.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// ChecksConfig holds check engine settings.
type ChecksConfig struct {
	// PoolSize is the number of workers shared by the health and readiness
	// controllers.
	PoolSize int `koanf:"pool_size"`

	// Timeout bounds a single check execution.
	Timeout time.Duration `koanf:"timeout"`

	// PollInterval is how often readiness is evaluated in the background to
	// feed the transition logger.
	PollInterval time.Duration `koanf:"poll_interval"`

	// ShutdownGrace is how long in-flight scheduled checks may run after
	// shutdown starts before they are canceled.
	ShutdownGrace time.Duration `koanf:"shutdown_grace"`

	// TransitionLogRate caps readiness transition log lines per second.
	TransitionLogRate float64 `koanf:"transition_log_rate"`

	// NameBudget is the display width for abbreviated check names.
	NameBudget int `koanf:"name_budget"`

	// MirrorReadiness copies every readiness check into the health family
	// under the "ready." prefix, so /health also reports dependencies.
	MirrorReadiness bool `koanf:"mirror_readiness"`

	// Groups maps group name to a comma-separated list of check names.
	Groups map[string]string `koanf:"groups"`
}

// ProbesConfig holds the built-in probes.
type ProbesConfig struct {
	Goroutines GoroutineProbeConfig `koanf:"goroutines"`
	Pool       PoolProbeConfig      `koanf:"pool"`
	Client     ClientConfig         `koanf:"client"`
	HTTP       []HTTPProbeConfig    `koanf:"http"`
}

// GoroutineProbeConfig configures the goroutine count probe.
type GoroutineProbeConfig struct {
	Enabled  bool `koanf:"enabled"`
	Warn     int  `koanf:"warn"`
	Critical int  `koanf:"critical"`
}

// PoolProbeConfig configures the worker pool saturation probe.
type PoolProbeConfig struct {
	Enabled bool `koanf:"enabled"`
}

// HTTPProbeConfig configures one HTTP endpoint probe. Probes with an
// interval run in the background and serve their last result; probes
// without one run on every evaluation.
type HTTPProbeConfig struct {
	Name         string        `koanf:"name"`
	URL          string        `koanf:"url"`
	Family       string        `koanf:"family"`
	Interval     time.Duration `koanf:"interval"`
	ExpectStatus int           `koanf:"expect_status"`
}

// ClientConfig holds the outbound HTTP client settings shared by HTTP probes.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"`
	UserAgent      string               `koanf:"user_agent"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds outbound rate limiting settings. A zero
// RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}
