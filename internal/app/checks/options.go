package checks

import (
	"log/slog"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
	"github.com/jsamuelsen11/opscheck/internal/ports"
)

// DefaultTimeout bounds a single check execution when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Observer receives the aggregate ready state after every RunAll.
type Observer func(ready bool)

type settings struct {
	logger    *slog.Logger
	family    check.Family
	timeout   time.Duration
	recorder  ports.CheckRecorder
	observers []Observer
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:  slog.New(slog.DiscardHandler),
		family:  check.FamilyHealth,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures an Engine or a Controller.
type Option func(*settings)

// WithLogger sets the logger for failure-state logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFamily labels logs and metrics with the check family being evaluated.
func WithFamily(f check.Family) Option {
	return func(s *settings) { s.family = f }
}

// WithTimeout bounds each check execution. Zero or negative disables the
// bound.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithRecorder installs a metrics recorder.
func WithRecorder(r ports.CheckRecorder) Option {
	return func(s *settings) { s.recorder = r }
}

// WithObserver adds an observer notified of the aggregate ready state after
// each RunAll. Observers are called in run completion order on the
// evaluating goroutine and must not block; hand the value off, for example
// with [TransitionLogger.Enqueue].
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}
