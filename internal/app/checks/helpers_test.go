package checks_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/opscheck/internal/domain/check"
)

// record is a captured log line.
type record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// captureHandler is a slog.Handler that stores every record it handles.
type captureHandler struct {
	mu      sync.Mutex
	records []record
}

func newCaptureLogger() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}
	return slog.New(h), h
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) all() []record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]record(nil), h.records...)
}

// withMessage returns the captured records whose message is msg.
func (h *captureHandler) withMessage(msg string) []record {
	var out []record
	for _, r := range h.all() {
		if r.Message == msg {
			out = append(out, r)
		}
	}
	return out
}

// switchable is a check whose outcome can be changed between runs.
type switchable struct {
	res atomic.Pointer[check.Result]
}

func newSwitchable(res check.Result) *switchable {
	s := &switchable{}
	s.set(res)
	return s
}

func (s *switchable) set(res check.Result) { s.res.Store(&res) }

func (s *switchable) Check(context.Context) (check.Result, error) {
	return *s.res.Load(), nil
}

var errBoom = errors.New("boom")

func failing(context.Context) (check.Result, error) {
	return check.Result{}, errBoom
}

func panicking(context.Context) (check.Result, error) {
	panic("kaboom")
}

// hanging blocks until its context is done.
func hanging(ctx context.Context) (check.Result, error) {
	<-ctx.Done()
	return check.Result{}, ctx.Err()
}

// countingRecorder counts recorder calls.
type countingRecorder struct {
	runs        atomic.Int32
	evaluations atomic.Int32

	mu         sync.Mutex
	overall    []string
	severityOf map[string]string
}

func (r *countingRecorder) RecordCheckRun(_ context.Context, _, name, severity string, _ time.Duration) {
	r.runs.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.severityOf == nil {
		r.severityOf = make(map[string]string)
	}
	r.severityOf[name] = severity
}

func (r *countingRecorder) RecordEvaluation(_ context.Context, _, _, overall string) {
	r.evaluations.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overall = append(r.overall, overall)
}
