package checks

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/opscheck/internal/app/fanout"
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/ports"
)

const tracerName = "github.com/jsamuelsen11/opscheck/internal/app/checks"

// Compile-time check that Controller implements ports.CheckController.
var _ ports.CheckController = (*Controller)(nil)

// Controller evaluates the checks of one registry on a shared worker pool,
// computes the overall severity and logs changes in per-check failure state
// between runs.
//
// The failure-state table is shared by RunAll and RunGroup: a check that
// recovers during a group run is reported as recovered once, no matter which
// operation observed its failure.
type Controller struct {
	engine   *Engine
	pool     *fanout.Pool
	groups   Groups
	settings settings
	tracer   trace.Tracer

	mu      sync.Mutex
	failing map[string]check.Result

	notifyMu sync.Mutex
}

// NewController creates a Controller. pool may be shared with other
// controllers; it bounds how many checks run at once.
func NewController(registry ports.CheckRegistry, pool *fanout.Pool, groups Groups, opts ...Option) *Controller {
	s := newSettings(opts)
	return &Controller{
		engine:   &Engine{registry: registry, settings: s},
		pool:     pool,
		groups:   groups,
		settings: s,
		tracer:   otel.Tracer(tracerName),
		failing:  make(map[string]check.Result),
	}
}

// Family returns the check family this controller evaluates.
func (c *Controller) Family() check.Family {
	return c.settings.family
}

// Groups returns the controller's group table.
func (c *Controller) Groups() Groups {
	return c.groups
}

// RunAll evaluates every registered check.
func (c *Controller) RunAll(ctx context.Context) ports.Report {
	ctx, span := c.tracer.Start(ctx, "checks.RunAll",
		trace.WithAttributes(attribute.String("check.family", c.settings.family.String())))
	defer span.End()

	results := c.engine.RunParallel(ctx, c.pool, AcceptAll)
	report := c.finish(ctx, span, "", results)
	c.notify(report.Ready())
	return report
}

// RunGroup evaluates the registered members of group. Members that are not
// registered are skipped. It returns false when group is not configured.
// Observers are not notified: a group does not carry the aggregate state.
func (c *Controller) RunGroup(ctx context.Context, group string) (ports.Report, bool) {
	members, ok := c.groups.Lookup(group)
	if !ok {
		c.settings.logger.DebugContext(ctx, "unknown check group",
			slog.String("group", group),
			slog.String("family", c.settings.family.String()),
		)
		return ports.Report{}, false
	}

	ctx, span := c.tracer.Start(ctx, "checks.RunGroup",
		trace.WithAttributes(
			attribute.String("check.family", c.settings.family.String()),
			attribute.String("check.group", group),
		))
	defer span.End()

	results := c.engine.RunParallel(ctx, c.pool, InNames(members...))
	return c.finish(ctx, span, group, results), true
}

func (c *Controller) finish(ctx context.Context, span trace.Span, group string, results map[string]check.Result) ports.Report {
	overall := check.SeverityHealthy
	for _, res := range results {
		overall = check.Max(overall, res.Severity())
	}

	c.logChanges(ctx, results)

	span.SetAttributes(
		attribute.Int("check.count", len(results)),
		attribute.String("check.overall", overall.String()),
	)
	if c.settings.recorder != nil {
		c.settings.recorder.RecordEvaluation(ctx, c.settings.family.String(), group, overall.String())
	}

	return ports.Report{Results: results, Overall: overall}
}

// stateChange is a failure-state transition recorded under the lock and
// logged after it is released.
type stateChange struct {
	name      string
	res       check.Result
	recovered bool
	previous  string
}

// logChanges diffs results against the failure-state table. Recoveries are
// removed from the table and logged at INFO; new failures and failures whose
// message changed are stored and logged at ERROR. A failure with an
// unchanged message is not logged again.
func (c *Controller) logChanges(ctx context.Context, results map[string]check.Result) {
	var changes []stateChange

	c.mu.Lock()
	for _, name := range slices.Sorted(maps.Keys(results)) {
		res := results[name]
		prev, wasFailing := c.failing[name]

		if res.OK() {
			if wasFailing {
				delete(c.failing, name)
				changes = append(changes, stateChange{name: name, res: res, recovered: true, previous: prev.Message()})
			}
			continue
		}

		if wasFailing && prev.Message() == res.Message() {
			continue
		}
		c.failing[name] = res
		changes = append(changes, stateChange{name: name, res: res})
	}
	c.mu.Unlock()

	family := c.settings.family.String()
	for _, ch := range changes {
		if ch.recovered {
			c.settings.logger.InfoContext(ctx, "check recovered",
				slog.String("check", ch.name),
				slog.String("family", family),
				slog.String("previous_message", ch.previous),
			)
			continue
		}

		attrs := []slog.Attr{
			slog.String("operation", "RunChecks"),
			slog.String("check", ch.name),
			slog.String("family", family),
			slog.String("severity", ch.res.Severity().String()),
			slog.String("message", ch.res.Message()),
		}
		if err := ch.res.Err(); err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}
		c.settings.logger.LogAttrs(ctx, slog.LevelError, "check failing", attrs...)
	}
}

// Failing returns the names currently recorded as failing, sorted.
func (c *Controller) Failing() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.failing))
}

// notify delivers ready to every observer on the calling goroutine. Runs that
// finish concurrently are delivered one after another, never interleaved.
func (c *Controller) notify(ready bool) {
	if len(c.settings.observers) == 0 {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	for _, o := range c.settings.observers {
		o(ready)
	}
}
