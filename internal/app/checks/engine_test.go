package checks_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/opscheck/internal/app/checks"
	"github.com/jsamuelsen11/opscheck/internal/app/fanout"
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/platform/health"
	"github.com/jsamuelsen11/opscheck/internal/ports"
	"github.com/jsamuelsen11/opscheck/mocks"
)

func newMixedRegistry() *health.Registry {
	r := health.New()
	r.Register("ok", check.Static(check.Healthy()))
	r.Register("warn", check.Static(check.Warn("degraded")))
	r.Register("error", check.Func(failing))
	r.Register("panic", check.Func(panicking))
	return r
}

func assertMixedResults(t *testing.T, results map[string]check.Result) {
	t.Helper()

	if len(results) != 4 {
		t.Fatalf("len(results) = %d, want 4", len(results))
	}
	if !results["ok"].OK() {
		t.Errorf("ok: got %v, want healthy", results["ok"])
	}
	if got := results["warn"].Severity(); got != check.SeverityWarning {
		t.Errorf("warn: severity = %v, want WARNING", got)
	}
	if !errors.Is(results["error"].Err(), errBoom) {
		t.Errorf("error: Err() = %v, want errBoom", results["error"].Err())
	}
	if results["error"].Message() != "boom" {
		t.Errorf("error: Message() = %q, want boom", results["error"].Message())
	}
	var pe *check.PanicError
	if !errors.As(results["panic"].Err(), &pe) {
		t.Errorf("panic: Err() = %v, want *check.PanicError", results["panic"].Err())
	}
}

func TestEngine_RunSequential_ContainsFailures(t *testing.T) {
	t.Parallel()

	e := checks.NewEngine(newMixedRegistry())
	assertMixedResults(t, e.RunSequential(context.Background(), nil))
}

// lookupCountingRegistry counts per-name reads that bypass Snapshot.
type lookupCountingRegistry struct {
	*health.Registry
	lookups   atomic.Int32
	snapshots atomic.Int32
}

func (r *lookupCountingRegistry) Names() []string {
	r.lookups.Add(1)
	return r.Registry.Names()
}

func (r *lookupCountingRegistry) Get(name string) (check.Check, bool) {
	r.lookups.Add(1)
	return r.Registry.Get(name)
}

func (r *lookupCountingRegistry) Snapshot() []ports.Registration {
	r.snapshots.Add(1)
	return r.Registry.Snapshot()
}

func TestEngine_SelectsFromOneSnapshot(t *testing.T) {
	t.Parallel()

	r := &lookupCountingRegistry{Registry: newMixedRegistry()}
	e := checks.NewEngine(r)

	assertMixedResults(t, e.RunParallel(context.Background(), fanout.NewPool(2), nil))

	if got := r.snapshots.Load(); got != 1 {
		t.Errorf("Snapshot called %d times, want 1", got)
	}
	if got := r.lookups.Load(); got != 0 {
		t.Errorf("per-name lookups = %d, want 0", got)
	}
}

func TestEngine_RunParallel_ContainsFailures(t *testing.T) {
	t.Parallel()

	e := checks.NewEngine(newMixedRegistry())
	assertMixedResults(t, e.RunParallel(context.Background(), fanout.NewPool(2), checks.AcceptAll))
}

func TestEngine_Filter(t *testing.T) {
	t.Parallel()

	e := checks.NewEngine(newMixedRegistry())

	results := e.RunSequential(context.Background(), checks.InNames("ok", "warn", "missing"))
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if _, ok := results["missing"]; ok {
		t.Error("unregistered name produced a result")
	}

	custom := func(name string, _ check.Check) bool { return name == "error" }
	results = e.RunParallel(context.Background(), fanout.NewPool(1), custom)
	if len(results) != 1 || results["error"].OK() {
		t.Errorf("custom filter results = %v", results)
	}
}

func TestEngine_EmptyRegistry(t *testing.T) {
	t.Parallel()

	e := checks.NewEngine(health.New())

	if got := e.RunSequential(context.Background(), nil); len(got) != 0 {
		t.Errorf("RunSequential on empty registry = %v", got)
	}
	if got := e.RunParallel(context.Background(), fanout.NewPool(4), nil); len(got) != 0 {
		t.Errorf("RunParallel on empty registry = %v", got)
	}
}

func TestEngine_PassesContextToCheck(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	mc := mocks.NewMockCheck(t)
	mc.EXPECT().
		Check(mock.MatchedBy(func(ctx context.Context) bool { return ctx.Value(ctxKey{}) == "marker" })).
		Return(check.Healthyf("saw marker"), nil).
		Once()

	r := health.New()
	r.Register("ctx", mc)

	results := checks.NewEngine(r).RunSequential(ctx, nil)
	if got := results["ctx"].Message(); got != "saw marker" {
		t.Errorf("Message() = %q, want saw marker", got)
	}
}

func TestEngine_PerCheckTimeout(t *testing.T) {
	t.Parallel()

	r := health.New()
	r.Register("hang", check.Func(hanging))
	r.Register("ok", check.Static(check.Healthy()))

	e := checks.NewEngine(r, checks.WithTimeout(20*time.Millisecond))

	start := time.Now()
	results := e.RunParallel(context.Background(), fanout.NewPool(2), nil)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("run took %v, timeout not applied", elapsed)
	}

	if !errors.Is(results["hang"].Err(), check.ErrCheckTimeout) {
		t.Errorf("hang: Err() = %v, want ErrCheckTimeout", results["hang"].Err())
	}
	if results["hang"].Severity() != check.SeverityCritical {
		t.Errorf("hang: severity = %v, want CRITICAL", results["hang"].Severity())
	}
	if !results["ok"].OK() {
		t.Errorf("ok: got %v, want healthy", results["ok"])
	}
}

func TestEngine_UnschedulableTasksBecomeFailingResults(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mc := mocks.NewMockCheck(t) // never called

	r := health.New()
	r.Register("a", mc)
	r.Register("b", mc)

	results := checks.NewEngine(r).RunParallel(ctx, fanout.NewPool(1), nil)

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for name, res := range results {
		if res.OK() {
			t.Errorf("%s: got healthy, want synthetic failure", name)
		}
		if !errors.Is(res.Err(), check.ErrNotScheduled) {
			t.Errorf("%s: Err() = %v, want ErrNotScheduled", name, res.Err())
		}
		if !errors.Is(res.Err(), context.Canceled) {
			t.Errorf("%s: Err() = %v, want wrapped context.Canceled", name, res.Err())
		}
	}
}

func TestEngine_RecordsRuns(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	e := checks.NewEngine(newMixedRegistry(), checks.WithRecorder(rec))
	e.RunParallel(context.Background(), fanout.NewPool(4), nil)

	if got := rec.runs.Load(); got != 4 {
		t.Errorf("recorded runs = %d, want 4", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if got := rec.severityOf["panic"]; got != "critical" {
		t.Errorf("severity recorded for panic = %q, want critical", got)
	}
}
