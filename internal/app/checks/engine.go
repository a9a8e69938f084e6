package checks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/app/fanout"
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/ports"
)

// Filter restricts which registered checks take part in a run.
type Filter func(name string, c check.Check) bool

// AcceptAll is the default Filter.
func AcceptAll(string, check.Check) bool { return true }

// InNames accepts only the given names.
func InNames(names ...string) Filter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(name string, _ check.Check) bool {
		_, ok := set[name]
		return ok
	}
}

// Engine executes registered checks and contains their failures. Every
// registered check yields a Result; nothing a check does can make a run
// return fewer entries than the filter selected.
type Engine struct {
	registry ports.CheckRegistry
	settings settings
}

// NewEngine creates an Engine over registry. Recognized options are
// WithFamily, WithTimeout and WithRecorder.
func NewEngine(registry ports.CheckRegistry, opts ...Option) *Engine {
	return &Engine{registry: registry, settings: newSettings(opts)}
}

type task struct {
	name  string
	check check.Check
}

// selectTasks resolves the filter against one snapshot of the registry, in
// name order.
func (e *Engine) selectTasks(filter Filter) []task {
	if filter == nil {
		filter = AcceptAll
	}
	var tasks []task
	for _, reg := range e.registry.Snapshot() {
		if !filter(reg.Name, reg.Check) {
			continue
		}
		tasks = append(tasks, task{name: reg.Name, check: reg.Check})
	}
	return tasks
}

// RunSequential executes the matching checks one after another in registry
// order on the calling goroutine.
func (e *Engine) RunSequential(ctx context.Context, filter Filter) map[string]check.Result {
	tasks := e.selectTasks(filter)
	results := make(map[string]check.Result, len(tasks))
	for _, t := range tasks {
		results[t.name] = e.execute(ctx, t)
	}
	return results
}

// RunParallel executes one task per matching check on pool and waits for all
// of them. A task that fails outside the check itself, for example because
// ctx ended before a worker slot was free, yields a synthetic failing Result
// carrying [check.ErrNotScheduled].
func (e *Engine) RunParallel(ctx context.Context, pool *fanout.Pool, filter Filter) map[string]check.Result {
	tasks := e.selectTasks(filter)
	outcomes := fanout.Run(ctx, pool, tasks, func(ctx context.Context, t task) (check.Result, error) {
		return e.execute(ctx, t), nil
	})

	results := make(map[string]check.Result, len(tasks))
	for i, o := range outcomes {
		name := tasks[i].name
		if o.Err != nil {
			results[name] = check.NewResult().
				WithError(fmt.Errorf("%w: %w", check.ErrNotScheduled, o.Err)).
				WithMessage("check %s could not be executed: %v", name, o.Err).
				Unhealthy()
			continue
		}
		results[name] = o.Value
	}
	return results
}

func (e *Engine) execute(ctx context.Context, t task) check.Result {
	start := time.Now()
	res := executeWithTimeout(ctx, t.check, e.settings.timeout)
	if e.settings.recorder != nil {
		e.settings.recorder.RecordCheckRun(ctx, e.settings.family.String(), t.name,
			res.Severity().String(), time.Since(start))
	}
	return res
}

// executeWithTimeout runs c on its own goroutine and stops waiting once the
// timeout expires. A check that ignores its context keeps running in the
// background, but the run it belongs to is not held up.
func executeWithTimeout(ctx context.Context, c check.Check, timeout time.Duration) check.Result {
	if timeout <= 0 {
		return check.Execute(ctx, c)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan check.Result, 1)
	go func() {
		done <- check.Execute(ctx, c)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return check.NewResult().
				WithError(fmt.Errorf("%w after %s", check.ErrCheckTimeout, timeout)).
				WithMessage("check timed out after %s", timeout).
				Unhealthy()
		}
		return check.FromError(ctx.Err())
	}
}
