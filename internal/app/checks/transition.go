package checks

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

// DefaultTransitionRate is the number of transition log lines allowed per
// second.
const DefaultTransitionRate = 5

// transitionQueueSize bounds the events buffered by Enqueue for Listen.
const transitionQueueSize = 64

const (
	stateUnknown int32 = iota
	stateUnready
	stateReady
)

func stateOf(ready bool) int32 {
	if ready {
		return stateReady
	}
	return stateUnready
}

// TransitionLogger logs flips of the aggregate ready state. Repeated values
// never log twice and concurrent deliveries of the same value log once. Log
// output is rate limited; lines dropped by the limiter are counted and
// reported on the next line that is written.
//
// The first observed state is logged at DEBUG as the initial state, later
// transitions at INFO.
type TransitionLogger struct {
	logger     *slog.Logger
	family     check.Family
	limiter    *rate.Limiter
	state      atomic.Int32
	suppressed atomic.Int64
	queue      chan bool
	dropped    atomic.Int64
}

// NewTransitionLogger creates a logger allowing perSecond lines per second
// with an equal burst. A perSecond of zero or less disables rate limiting.
func NewTransitionLogger(logger *slog.Logger, family check.Family, perSecond float64) *TransitionLogger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}

	return &TransitionLogger{
		logger:  logger,
		family:  family,
		limiter: limiter,
		queue:   make(chan bool, transitionQueueSize),
	}
}

// Observe records the aggregate state ready and reports whether it differed
// from the previously recorded state.
func (t *TransitionLogger) Observe(ready bool) bool {
	next := stateOf(ready)
	for {
		cur := t.state.Load()
		if cur == next {
			return false
		}
		if t.state.CompareAndSwap(cur, next) {
			t.log(cur, ready)
			return true
		}
	}
}

// Enqueue hands ready to Listen without blocking. Values are observed in
// the order they were enqueued. When the queue is full the value is dropped
// and counted.
func (t *TransitionLogger) Enqueue(ready bool) {
	select {
	case t.queue <- ready:
	default:
		if t.dropped.Add(1) == 1 {
			t.logger.Warn("readiness event queue full, dropping events",
				slog.String("family", t.family.String()),
			)
		}
	}
}

// Dropped returns the number of values Enqueue discarded.
func (t *TransitionLogger) Dropped() int64 {
	return t.dropped.Load()
}

// Listen observes enqueued values until ctx is done.
func (t *TransitionLogger) Listen(ctx context.Context) {
	t.Run(ctx, t.queue)
}

// Run observes events in order until ctx is done or events is closed.
func (t *TransitionLogger) Run(ctx context.Context, events <-chan bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case ready, ok := <-events:
			if !ok {
				return
			}
			t.Observe(ready)
		}
	}
}

// Suppressed returns the number of lines dropped by the rate limiter and not
// yet reported.
func (t *TransitionLogger) Suppressed() int64 {
	return t.suppressed.Load()
}

func (t *TransitionLogger) log(prev int32, ready bool) {
	if !t.limiter.Allow() {
		t.suppressed.Add(1)
		return
	}

	attrs := []slog.Attr{
		slog.String("family", t.family.String()),
		slog.Bool("ready", ready),
	}
	if n := t.suppressed.Swap(0); n > 0 {
		attrs = append(attrs, slog.Int64("suppressed", n))
	}

	ctx := context.Background()
	if prev == stateUnknown {
		t.logger.LogAttrs(ctx, slog.LevelDebug, "initial readiness state", attrs...)
		return
	}
	t.logger.LogAttrs(ctx, slog.LevelInfo, "readiness changed", attrs...)
}
