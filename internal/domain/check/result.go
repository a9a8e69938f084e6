package check

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

// warnPrefix marks an unhealthy Result as a warning rather than a critical
// failure. Matching is case-insensitive.
const warnPrefix = "WARN:"

// Result is the immutable outcome of a single check evaluation. All fields
// are unexported and set once by a constructor or a Builder; a new
// evaluation always produces a new Result.
//
// A healthy Result never carries an error.
type Result struct {
	ok        bool
	message   string
	err       error
	timestamp time.Time
	details   Details
}

// Healthy returns a healthy Result with no message.
func Healthy() Result {
	return Result{ok: true, timestamp: time.Now()}
}

// Healthyf returns a healthy Result with a formatted message.
func Healthyf(format string, args ...any) Result {
	return Result{ok: true, message: fmt.Sprintf(format, args...), timestamp: time.Now()}
}

// Unhealthy returns a failing Result with the given message.
func Unhealthy(message string) Result {
	return Result{message: message, timestamp: time.Now()}
}

// Unhealthyf returns a failing Result with a formatted message.
func Unhealthyf(format string, args ...any) Result {
	return Unhealthy(fmt.Sprintf(format, args...))
}

// Warn returns a failing Result whose message carries the "WARN: " prefix,
// which classifies it as [SeverityWarning] instead of [SeverityCritical].
func Warn(message string) Result {
	return Unhealthy(warnPrefix + " " + message)
}

// Warnf is the formatted variant of Warn.
func Warnf(format string, args ...any) Result {
	return Warn(fmt.Sprintf(format, args...))
}

// FromError returns a failing Result whose message is err's text and whose
// error is err. A nil err yields a failing Result with no message.
func FromError(err error) Result {
	if err == nil {
		return Unhealthy("")
	}
	return Result{message: err.Error(), err: err, timestamp: time.Now()}
}

// OK reports whether the check passed.
func (r Result) OK() bool { return r.ok }

// Message returns the human-readable message, or "" when absent.
func (r Result) Message() string { return r.message }

// Err returns the captured error, if the check failed with one.
func (r Result) Err() error { return r.err }

// Timestamp returns the time the Result was created.
func (r Result) Timestamp() time.Time { return r.timestamp }

// Details returns the auxiliary data attached to the Result.
func (r Result) Details() Details { return r.details }

// Severity classifies the Result. Shorthand for Classify(r).
func (r Result) Severity() Severity { return Classify(r) }

func (r Result) String() string {
	if r.ok {
		if r.message == "" {
			return "healthy"
		}
		return "healthy: " + r.message
	}
	if r.message == "" {
		return "unhealthy"
	}
	return "unhealthy: " + r.message
}

// resultJSON is the wire shape of a Result.
type resultJSON struct {
	Healthy   bool     `json:"healthy"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
	Timestamp string   `json:"timestamp"`
	Details   *Details `json:"details,omitempty"`
}

// MarshalJSON encodes the Result with details in insertion order.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Healthy:   r.ok,
		Message:   r.message,
		Timestamp: r.timestamp.UTC().Format(time.RFC3339Nano),
	}
	if r.err != nil {
		out.Error = r.err.Error()
	}
	if r.details.Len() > 0 {
		d := r.details
		out.Details = &d
	}
	return json.Marshal(out)
}

// Details is an insertion-ordered, read-only set of key/value pairs attached
// to a Result. The zero value is empty.
type Details struct {
	keys   []string
	values map[string]any
}

// Len returns the number of entries.
func (d Details) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order.
func (d Details) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Get returns the value stored under key.
func (d Details) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// All iterates the entries in insertion order.
func (d Details) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the entries as a JSON object preserving insertion order.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding detail %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Builder assembles a Result with details. A Builder is not safe for
// concurrent use; the Results it produces are independent snapshots and are
// not affected by later calls on the Builder.
//
//	res := check.NewResult().
//	    WithDetail("pool", "primary").
//	    WithDetail("active", 12).
//	    WithMessage("pool has %d active connections", 12).
//	    Healthy()
type Builder struct {
	message string
	err     error
	keys    []string
	values  map[string]any
}

// NewResult starts a new Builder.
func NewResult() *Builder {
	return &Builder{}
}

// WithMessage sets a formatted message.
func (b *Builder) WithMessage(format string, args ...any) *Builder {
	if len(args) == 0 {
		b.message = format
	} else {
		b.message = fmt.Sprintf(format, args...)
	}
	return b
}

// WithError records err. It is dropped if the Result is built healthy.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// WithDetail appends a detail entry. Setting an existing key replaces its
// value and keeps its original position.
func (b *Builder) WithDetail(key string, value any) *Builder {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
	return b
}

// Healthy builds a healthy Result.
func (b *Builder) Healthy() Result {
	return Result{ok: true, message: b.message, timestamp: time.Now(), details: b.snapshot()}
}

// Unhealthy builds a failing Result. When no message was set and an error
// was recorded, the error text becomes the message.
func (b *Builder) Unhealthy() Result {
	msg := b.message
	if msg == "" && b.err != nil {
		msg = b.err.Error()
	}
	return Result{message: msg, err: b.err, timestamp: time.Now(), details: b.snapshot()}
}

// Warn builds a failing Result with the warning prefix applied to the message.
func (b *Builder) Warn() Result {
	res := b.Unhealthy()
	res.message = warnPrefix + " " + res.message
	return res
}

func (b *Builder) snapshot() Details {
	if len(b.keys) == 0 {
		return Details{}
	}
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	values := make(map[string]any, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return Details{keys: keys, values: values}
}
