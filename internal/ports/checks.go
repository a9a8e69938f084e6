package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

// RegistryListener observes registrations on a CheckRegistry.
// Implementations must not call back into the registry that notifies them
// from the same goroutine while holding their own locks.
type RegistryListener interface {
	// OnAdded is called after c was registered under name.
	OnAdded(name string, c check.Check)

	// OnRemoved is called after the check registered under name was removed.
	OnRemoved(name string, c check.Check)
}

// Registration is a named check held by a CheckRegistry.
type Registration struct {
	Name  string
	Check check.Check
}

// CheckRegistry stores named checks and notifies listeners of changes.
// Listener events are delivered in the order the changes were made.
type CheckRegistry interface {
	// Register adds c under name. A duplicate name is ignored and false is
	// returned; the first registration is kept.
	Register(name string, c check.Check) bool

	// Unregister removes the check registered under name, if any.
	Unregister(name string) bool

	// Names returns the registered names in lexicographic order.
	Names() []string

	// Get returns the check registered under name.
	Get(name string) (check.Check, bool)

	// Snapshot returns every registration sorted by name, captured
	// atomically.
	Snapshot() []Registration

	// AddListener subscribes l. Every existing registration is replayed to l
	// via OnAdded before any later event is delivered.
	AddListener(l RegistryListener)

	// RemoveListener unsubscribes l.
	RemoveListener(l RegistryListener)

	// Shutdown stops the registry's internal scheduler, waiting for
	// in-flight work until ctx is done.
	Shutdown(ctx context.Context) error
}

// CheckController runs checks and aggregates their results. Used by the
// inbound HTTP adapter.
type CheckController interface {
	// RunAll evaluates every registered check.
	RunAll(ctx context.Context) Report

	// RunGroup evaluates the members of the named group. The boolean is false
	// when the group is not configured, which is distinct from a configured
	// group with no members.
	RunGroup(ctx context.Context, group string) (Report, bool)
}

// Report is the outcome of one evaluation run.
type Report struct {
	Results map[string]check.Result
	Overall check.Severity
}

// StatusCode returns the HTTP-equivalent status code of the overall severity.
func (r Report) StatusCode() int {
	return r.Overall.StatusCode()
}

// Ready reports whether every participating check was healthy.
func (r Report) Ready() bool {
	return r.Overall == check.SeverityHealthy
}

// CheckRecorder receives self-instrumentation events from the check engine.
// Implemented by the telemetry metrics set.
type CheckRecorder interface {
	RecordCheckRun(ctx context.Context, family, name, severity string, elapsed time.Duration)
	RecordEvaluation(ctx context.Context, family, group, overall string)
}
