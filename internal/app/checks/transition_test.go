package checks_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/app/checks"
	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

func TestTransitionLogger_Debounce(t *testing.T) {
	t.Parallel()

	logger, logs := newCaptureLogger()
	tl := checks.NewTransitionLogger(logger, check.FamilyReadiness, 0)

	var transitions int
	for _, ready := range []bool{false, false, true, true, false} {
		if tl.Observe(ready) {
			transitions++
		}
	}

	records := logs.all()
	if len(records) != 3 {
		t.Fatalf("got %d log events, want 3: %+v", len(records), records)
	}
	if transitions != 3 {
		t.Errorf("Observe reported %d changes, want 3", transitions)
	}

	wantLevels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelInfo}
	wantReady := []bool{false, true, false}
	for i, r := range records {
		if r.Level != wantLevels[i] {
			t.Errorf("record %d level = %v, want %v", i, r.Level, wantLevels[i])
		}
		if r.Attrs["ready"] != wantReady[i] {
			t.Errorf("record %d ready = %v, want %v", i, r.Attrs["ready"], wantReady[i])
		}
		if r.Attrs["family"] != "readiness" {
			t.Errorf("record %d family = %v, want readiness", i, r.Attrs["family"])
		}
	}
}

func TestTransitionLogger_ConcurrentSameValueLogsOnce(t *testing.T) {
	t.Parallel()

	for range 50 {
		logger, logs := newCaptureLogger()
		tl := checks.NewTransitionLogger(logger, check.FamilyHealth, 0)
		tl.Observe(false)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				tl.Observe(true)
			}()
		}
		close(start)
		wg.Wait()

		if got := len(logs.withMessage("readiness changed")); got != 1 {
			t.Fatalf("concurrent delivery logged %d transitions, want 1", got)
		}
	}
}

func TestTransitionLogger_RateLimited(t *testing.T) {
	t.Parallel()

	logger, logs := newCaptureLogger()
	tl := checks.NewTransitionLogger(logger, check.FamilyHealth, 1)

	for _, ready := range []bool{true, false, true, false} {
		tl.Observe(ready)
	}

	if got := len(logs.all()); got != 1 {
		t.Errorf("got %d log lines under a 1/s budget, want 1", got)
	}
	if got := tl.Suppressed(); got != 3 {
		t.Errorf("Suppressed() = %d, want 3", got)
	}
}

func TestTransitionLogger_Run(t *testing.T) {
	t.Parallel()

	logger, logs := newCaptureLogger()
	tl := checks.NewTransitionLogger(logger, check.FamilyHealth, checks.DefaultTransitionRate)

	events := make(chan bool)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tl.Run(context.Background(), events)
	}()

	for _, ready := range []bool{true, true, false} {
		events <- ready
	}
	close(events)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after channel close")
	}

	if got := len(logs.all()); got != 2 {
		t.Errorf("got %d log lines, want 2", got)
	}
}

func TestTransitionLogger_RunStopsOnContext(t *testing.T) {
	t.Parallel()

	tl := checks.NewTransitionLogger(nil, check.FamilyHealth, 0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		tl.Run(ctx, make(chan bool))
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestTransitionLogger_ListenKeepsEnqueueOrder(t *testing.T) {
	t.Parallel()

	logger, logs := newCaptureLogger()
	tl := checks.NewTransitionLogger(logger, check.FamilyReadiness, 0)

	for _, ready := range []bool{true, false, false, true, false} {
		tl.Enqueue(ready)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		tl.Listen(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(logs.all()) < 4 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	records := logs.all()
	want := []bool{true, false, true, false}
	if len(records) != len(want) {
		t.Fatalf("got %d log lines, want %d", len(records), len(want))
	}
	for i, r := range records {
		if got := r.Attrs["ready"]; got != want[i] {
			t.Errorf("line %d ready = %v, want %v", i, got, want[i])
		}
	}
}

func TestTransitionLogger_EnqueueDropsWhenFull(t *testing.T) {
	t.Parallel()

	logger, logs := newCaptureLogger()
	tl := checks.NewTransitionLogger(logger, check.FamilyHealth, 0)

	for range 64 + 3 {
		tl.Enqueue(true)
	}

	if got := tl.Dropped(); got != 3 {
		t.Errorf("Dropped() = %d, want 3", got)
	}
	if got := len(logs.withMessage("readiness event queue full, dropping events")); got != 1 {
		t.Errorf("queue full logged %d times, want 1", got)
	}
}
