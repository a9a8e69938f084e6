package probes

import (
	"context"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

// PoolName is the registry name of the worker pool probe.
const PoolName = "runtime.pool"

// Saturation is the view of a worker pool the probe needs. *fanout.Pool
// satisfies it.
type Saturation interface {
	Active() int
	Size() int
}

// PoolCheck reports a warning while every worker of the pool is busy. The
// probe itself runs on a worker, so a single-worker pool always reads as
// saturated during evaluation; size pools above one.
type PoolCheck struct {
	pool Saturation
}

// NewPoolCheck creates a saturation probe for pool.
func NewPoolCheck(pool Saturation) *PoolCheck {
	return &PoolCheck{pool: pool}
}

// Check implements check.Check.
func (p *PoolCheck) Check(context.Context) (check.Result, error) {
	active, size := p.pool.Active(), p.pool.Size()

	b := check.NewResult().
		WithDetail("active", active).
		WithDetail("size", size)

	if active >= size {
		return b.WithMessage("worker pool saturated").Warn(), nil
	}
	return b.WithMessage("%d/%d workers busy", active, size).Healthy(), nil
}
