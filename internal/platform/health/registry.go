// Package health provides the thread-safe check registry. Checks are
// registered by name at startup, looked up by the check engine on each
// evaluation, and unregistered at shutdown. Listeners observe registrations
// and are replayed the current contents when they subscribe.
package health

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/ports"
)

// Compile-time interface check.
var _ ports.CheckRegistry = (*Registry)(nil)

// Registry is a thread-safe implementation of [ports.CheckRegistry].
//
// Mutations hold an exclusive lock only for the map update and for queuing
// the listener events they raise. Events are delivered outside the lock, in
// queue order, by one goroutine at a time, so a listener may call back into
// the registry and never observes events out of order.
type Registry struct {
	family check.Family
	logger *slog.Logger

	mu          sync.RWMutex
	checks      map[string]check.Check
	listeners   []ports.RegistryListener
	pending     []event
	dispatching bool

	sched *scheduler
}

// event is a listener notification queued under mu. listeners is the
// listener set at the time the event was raised.
type event struct {
	name      string
	check     check.Check
	removed   bool
	listeners []ports.RegistryListener
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFamily labels the registry with the check family it holds.
func WithFamily(f check.Family) Option {
	return func(r *Registry) {
		r.family = f
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		family: check.FamilyHealth,
		logger: slog.New(slog.DiscardHandler),
		checks: make(map[string]check.Check),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.sched = newScheduler()
	return r
}

// Family returns the check family the registry holds.
func (r *Registry) Family() check.Family {
	return r.family
}

// Register adds c under name and notifies listeners. If name is already
// registered the call is a no-op and returns false: the first registration
// wins and listeners are not notified again. Safe for concurrent use.
//
// Listeners have been notified when Register returns, unless another
// goroutine was delivering events at the time; that goroutine then delivers
// this one after every event queued before it.
//
// Register panics if name is empty or c is nil.
func (r *Registry) Register(name string, c check.Check) bool {
	if name == "" {
		panic("health: Register called with empty name")
	}
	if c == nil {
		panic("health: Register called with nil check for " + name)
	}

	r.mu.Lock()
	if _, exists := r.checks[name]; exists {
		r.mu.Unlock()
		r.logger.Debug("duplicate check registration ignored",
			slog.String("check", name),
			slog.String("family", r.family.String()),
		)
		return false
	}
	r.checks[name] = c
	deliver := r.enqueueLocked(event{name: name, check: c, listeners: r.listeners})
	r.mu.Unlock()

	r.logger.Debug("check registered",
		slog.String("check", name),
		slog.String("family", r.family.String()),
	)
	if deliver {
		r.dispatch()
	}
	return true
}

// RegisterAll registers every entry of checks in lexicographic name order.
// It returns the number of checks that were newly registered.
func (r *Registry) RegisterAll(checks map[string]check.Check) int {
	added := 0
	for _, name := range slices.Sorted(maps.Keys(checks)) {
		if r.Register(name, checks[name]) {
			added++
		}
	}
	return added
}

// Unregister removes the check registered under name and notifies listeners.
// It returns false, without notifying, when name is not registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	c, exists := r.checks[name]
	if !exists {
		r.mu.Unlock()
		return false
	}
	delete(r.checks, name)
	deliver := r.enqueueLocked(event{name: name, check: c, removed: true, listeners: r.listeners})
	r.mu.Unlock()

	r.logger.Debug("check unregistered",
		slog.String("check", name),
		slog.String("family", r.family.String()),
	)
	if deliver {
		r.dispatch()
	}
	return true
}

// Names returns a lexicographically sorted snapshot of the registered names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.checks))
}

// Get returns the check registered under name.
func (r *Registry) Get(name string) (check.Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checks[name]
	return c, ok
}

// Snapshot returns every registration sorted by name. The slice is built
// under a single read lock so callers can run checks without holding it.
func (r *Registry) Snapshot() []ports.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() []ports.Registration {
	entries := make([]ports.Registration, 0, len(r.checks))
	for _, name := range slices.Sorted(maps.Keys(r.checks)) {
		entries = append(entries, ports.Registration{Name: name, Check: r.checks[name]})
	}
	return entries
}

// AddListener subscribes l and replays every current registration to it via
// OnAdded, in name order. The replay is queued in the same critical section
// that subscribes l, so every live event raised afterwards reaches l only
// after the whole replay, and l sees each registration exactly once.
//
// Listeners are compared by equality in RemoveListener and must therefore be
// comparable values, typically pointers.
func (r *Registry) AddListener(l ports.RegistryListener) {
	r.mu.Lock()
	r.listeners = append(slices.Clip(r.listeners), l)

	only := []ports.RegistryListener{l}
	replay := make([]event, 0, len(r.checks))
	for _, e := range r.snapshotLocked() {
		replay = append(replay, event{name: e.Name, check: e.Check, listeners: only})
	}
	deliver := r.enqueueLocked(replay...)
	r.mu.Unlock()

	if deliver {
		r.dispatch()
	}
}

// RemoveListener unsubscribes l. Unknown listeners are ignored. Events queued
// before the call may still reach l.
func (r *Registry) RemoveListener(l ports.RegistryListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.listeners, l)
	if idx < 0 {
		return
	}
	r.listeners = slices.Delete(slices.Clone(r.listeners), idx, idx+1)
}

// enqueueLocked queues evs and reports whether the caller has to dispatch
// them. It returns false while another goroutine is dispatching; that
// goroutine drains the queue before it stops. Must be called with mu held.
func (r *Registry) enqueueLocked(evs ...event) bool {
	for _, ev := range evs {
		if len(ev.listeners) > 0 {
			r.pending = append(r.pending, ev)
		}
	}
	if r.dispatching || len(r.pending) == 0 {
		return false
	}
	r.dispatching = true
	return true
}

// dispatch delivers queued events until the queue is empty. Events queued by
// callbacks are appended to the same queue and delivered by this loop.
func (r *Registry) dispatch() {
	drained := false
	defer func() {
		if !drained {
			// A listener panicked; let the next mutation resume delivery.
			r.mu.Lock()
			r.dispatching = false
			r.mu.Unlock()
		}
	}()

	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.pending = nil
			r.dispatching = false
			r.mu.Unlock()
			drained = true
			return
		}
		ev := r.pending[0]
		r.pending[0] = event{}
		r.pending = r.pending[1:]
		r.mu.Unlock()

		for _, l := range ev.listeners {
			if ev.removed {
				l.OnRemoved(ev.name, ev.check)
			} else {
				l.OnAdded(ev.name, ev.check)
			}
		}
	}
}

// Shutdown stops the internal scheduler used by scheduled checks. In-flight
// runs are given until ctx is done to finish; after that their context is
// canceled and [ErrShutdownTimeout] is returned. Calling Shutdown more than
// once is safe.
func (r *Registry) Shutdown(ctx context.Context) error {
	err := r.sched.shutdown(ctx)
	if err != nil {
		r.logger.Warn("check scheduler forced to stop",
			slog.String("family", r.family.String()),
			slog.Any("error", err),
		)
	}
	return err
}
