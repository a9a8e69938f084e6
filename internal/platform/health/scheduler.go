package health

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

// ErrShutdownTimeout is returned by Shutdown when scheduled runs did not
// finish within the grace period and had to be canceled.
var ErrShutdownTimeout = errors.New("health: scheduler shutdown grace period exceeded")

// pendingMessage is reported by a scheduled check before its first run completes.
const pendingMessage = "waiting for first scheduled run"

// scheduler runs scheduled checks on background goroutines. Runs share a
// context that is canceled only when shutdown has to force-stop them.
type scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

func newScheduler() *scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &scheduler{
		ctx:    ctx,
		cancel: cancel,
		stop:   make(chan struct{}),
	}
}

// start launches fn immediately and then on every tick of interval until the
// scheduler stops. It returns false when the scheduler is already closed.
func (s *scheduler) start(interval time.Duration, fn func(ctx context.Context)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			fn(s.ctx)

			select {
			case <-s.stop:
				return
			case <-s.ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return true
}

func (s *scheduler) shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.stop)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		return ErrShutdownTimeout
	}
}

// scheduledCheck serves the most recent Result of a check that runs on the
// registry's scheduler rather than on the caller's goroutine.
type scheduledCheck struct {
	latest atomic.Pointer[check.Result]
}

func newScheduledCheck() *scheduledCheck {
	sc := &scheduledCheck{}
	pending := check.Unhealthy(pendingMessage)
	sc.latest.Store(&pending)
	return sc
}

// Check returns the last completed Result.
func (sc *scheduledCheck) Check(context.Context) (check.Result, error) {
	return *sc.latest.Load(), nil
}

// Schedule registers c under name as a scheduled check: c runs on the
// registry's internal scheduler immediately and then every interval, and
// evaluations of name return the last completed Result without invoking c.
// Until the first run completes the registered check reports a failing
// "waiting for first scheduled run" Result.
//
// Each run is bounded by timeout when it is positive. Schedule returns false
// when name is already registered or the registry has been shut down.
func (r *Registry) Schedule(name string, c check.Check, interval, timeout time.Duration) bool {
	if c == nil {
		panic("health: Schedule called with nil check for " + name)
	}
	if interval <= 0 {
		panic("health: Schedule called with non-positive interval for " + name)
	}

	sc := newScheduledCheck()
	if !r.Register(name, sc) {
		return false
	}

	started := r.sched.start(interval, func(ctx context.Context) {
		runCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res := check.Execute(runCtx, c)
		sc.latest.Store(&res)

		if !res.OK() {
			r.logger.Debug("scheduled check failed",
				slog.String("check", name),
				slog.String("family", r.family.String()),
				slog.String("message", res.Message()),
			)
		}
	})
	if !started {
		r.Unregister(name)
		return false
	}

	r.logger.Info("check scheduled",
		slog.String("check", name),
		slog.String("family", r.family.String()),
		slog.Duration("interval", interval),
	)
	return true
}
