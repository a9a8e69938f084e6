package config

const (
	defaultServerPort = 8080

	defaultPoolSize          = 8
	defaultTransitionLogRate = 5
	defaultNameBudget        = 20

	defaultGoroutineWarn     = 5000
	defaultGoroutineCritical = 20000

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":            "0.0.0.0",
		"server.port":            defaultServerPort,
		"server.read_timeout":    "5s",
		"server.write_timeout":   "30s",
		"server.idle_timeout":    "120s",
		"server.request_timeout": "15s",

		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "opscheck",

		"checks.pool_size":           defaultPoolSize,
		"checks.timeout":             "10s",
		"checks.poll_interval":       "15s",
		"checks.shutdown_grace":      "5s",
		"checks.transition_log_rate": defaultTransitionLogRate,
		"checks.name_budget":         defaultNameBudget,
		"checks.mirror_readiness":    false,

		"probes.goroutines.enabled":  true,
		"probes.goroutines.warn":     defaultGoroutineWarn,
		"probes.goroutines.critical": defaultGoroutineCritical,
		"probes.pool.enabled":        true,

		"probes.client.timeout":                         "5s",
		"probes.client.user_agent":                      "opscheck",
		"probes.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"probes.client.circuit_breaker.timeout":         "30s",
		"probes.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"probes.client.rate_limit.requests_per_second":  0,
		"probes.client.rate_limit.burst_size":           1,
	}
}
