package probes

import (
	"log/slog"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/platform/config"
	"github.com/jsamuelsen11/opscheck/internal/platform/httpclient"
	"github.com/jsamuelsen11/opscheck/internal/platform/telemetry"
)

// Scheduled is a probe evaluated in the background on its own interval.
type Scheduled struct {
	Check    check.Check
	Interval time.Duration
}

// Set holds the configured probes of one family, split by how they run.
type Set struct {
	// Checks run on every evaluation.
	Checks map[string]check.Check

	// Scheduled run on their interval and serve their last result.
	Scheduled map[string]Scheduled
}

func newSet() *Set {
	return &Set{Checks: make(map[string]check.Check), Scheduled: make(map[string]Scheduled)}
}

// FromConfig builds the probe sets for both families. The goroutine probe
// belongs to the health family and the pool probe to the readiness family;
// HTTP probes name their family. Each HTTP probe gets its own client so one
// failing target cannot trip the breaker of another.
func FromConfig(cfg *config.ProbesConfig, pool Saturation, metrics *telemetry.Metrics, logger *slog.Logger) map[check.Family]*Set {
	sets := map[check.Family]*Set{
		check.FamilyHealth:    newSet(),
		check.FamilyReadiness: newSet(),
	}

	if cfg.Goroutines.Enabled {
		sets[check.FamilyHealth].Checks[GoroutinesName] = NewGoroutineCheck(cfg.Goroutines.Warn, cfg.Goroutines.Critical)
	}
	if cfg.Pool.Enabled && pool != nil {
		sets[check.FamilyReadiness].Checks[PoolName] = NewPoolCheck(pool)
	}

	for _, p := range cfg.HTTP {
		set, ok := sets[check.Family(p.Family)]
		if !ok {
			continue
		}

		client := httpclient.New(&cfg.Client, p.Name, metrics, logger)
		probe := NewHTTPCheck(client, p.URL, p.ExpectStatus)

		if p.Interval > 0 {
			set.Scheduled[p.Name] = Scheduled{Check: probe, Interval: p.Interval}
		} else {
			set.Checks[p.Name] = probe
		}
	}

	return sets
}
