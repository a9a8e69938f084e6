package probes

import (
	"context"
	"runtime"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

// GoroutinesName is the registry name of the goroutine probe.
const GoroutinesName = "runtime.goroutines"

// GoroutineCheck reports the number of live goroutines against two
// thresholds. A count at or above critical is critical; at or above warn it
// is a warning. Failing messages name only the threshold so that a steady
// overload is logged once rather than on every evaluation.
type GoroutineCheck struct {
	warn     int
	critical int
}

// NewGoroutineCheck creates a goroutine probe with the given thresholds.
func NewGoroutineCheck(warn, critical int) *GoroutineCheck {
	return &GoroutineCheck{warn: warn, critical: critical}
}

// Check implements check.Check.
func (g *GoroutineCheck) Check(context.Context) (check.Result, error) {
	n := runtime.NumGoroutine()

	b := check.NewResult().
		WithDetail("goroutines", n).
		WithDetail("warn", g.warn).
		WithDetail("critical", g.critical)

	switch {
	case n >= g.critical:
		return b.WithMessage("goroutine count at or above critical threshold %d", g.critical).Unhealthy(), nil
	case n >= g.warn:
		return b.WithMessage("goroutine count at or above warn threshold %d", g.warn).Warn(), nil
	default:
		return b.WithMessage("%d goroutines", n).Healthy(), nil
	}
}
