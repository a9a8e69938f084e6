package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Checks.validate(),
		c.Probes.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (ch *ChecksConfig) validate() error {
	var errs []error

	if ch.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("checks.pool_size must be >= 1, got %d", ch.PoolSize))
	}
	if ch.Timeout < 0 {
		errs = append(errs, errors.New("checks.timeout must not be negative"))
	}
	if ch.PollInterval <= 0 {
		errs = append(errs, errors.New("checks.poll_interval must be positive"))
	}
	if ch.ShutdownGrace < 0 {
		errs = append(errs, errors.New("checks.shutdown_grace must not be negative"))
	}
	if ch.TransitionLogRate < 0 {
		errs = append(errs, fmt.Errorf("checks.transition_log_rate must not be negative, got %g", ch.TransitionLogRate))
	}
	if ch.NameBudget < 0 {
		errs = append(errs, fmt.Errorf("checks.name_budget must not be negative, got %d", ch.NameBudget))
	}

	return errors.Join(errs...)
}

func (p *ProbesConfig) validate() error {
	var errs []error

	if g := p.Goroutines; g.Enabled {
		if g.Warn < 1 {
			errs = append(errs, fmt.Errorf("probes.goroutines.warn must be >= 1, got %d", g.Warn))
		}
		if g.Critical <= g.Warn {
			errs = append(errs, fmt.Errorf("probes.goroutines.critical (%d) must be greater than warn (%d)",
				g.Critical, g.Warn))
		}
	}

	if len(p.HTTP) > 0 {
		errs = append(errs, p.Client.validate())
	}

	seen := make(map[string]bool, len(p.HTTP))
	for i, h := range p.HTTP {
		errs = append(errs, h.validate(i))
		if h.Name != "" && seen[h.Name] {
			errs = append(errs, fmt.Errorf("probes.http[%d].name %q is not unique", i, h.Name))
		}
		seen[h.Name] = true
	}

	return errors.Join(errs...)
}

func (h *HTTPProbeConfig) validate(i int) error {
	var errs []error

	if h.Name == "" {
		errs = append(errs, fmt.Errorf("probes.http[%d].name must not be empty", i))
	}

	u, err := url.Parse(h.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("probes.http[%d].url must be an absolute http(s) URL, got %q", i, h.URL))
	}

	switch h.Family {
	case "", "health", "readiness":
		// Empty means health.
	default:
		errs = append(errs, fmt.Errorf("probes.http[%d].family must be one of: health, readiness; got %q", i, h.Family))
	}

	if h.Interval < 0 {
		errs = append(errs, fmt.Errorf("probes.http[%d].interval must not be negative", i))
	}
	if h.ExpectStatus != 0 && (h.ExpectStatus < 100 || h.ExpectStatus > 599) {
		errs = append(errs, fmt.Errorf("probes.http[%d].expect_status must be a valid HTTP status, got %d", i, h.ExpectStatus))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("probes.client.timeout must be positive"))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("probes.client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("probes.client.rate_limit.requests_per_second must not be negative"))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("probes.client.rate_limit.burst_size must be >= 1, got %d",
			cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}
