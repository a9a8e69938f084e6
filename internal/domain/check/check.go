package check

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Check is a single diagnostic probe. It reports its outcome as a Result or
// fails by returning an error; a panic is treated the same as an error by
// Execute. The name under which a Check is known and the groups it belongs
// to are assigned externally at registration time.
type Check interface {
	Check(ctx context.Context) (Result, error)
}

// Func adapts an ordinary function to the Check interface.
type Func func(ctx context.Context) (Result, error)

// Check calls f(ctx).
func (f Func) Check(ctx context.Context) (Result, error) {
	return f(ctx)
}

// Static returns a Check that always reports res. Useful for tests and for
// wiring fixed states such as maintenance mode.
func Static(res Result) Check {
	return Func(func(context.Context) (Result, error) { return res, nil })
}

// Execute runs c and never propagates a failure: a returned Result is passed
// through unchanged, a returned error becomes FromError(err), and a panic is
// recovered into a *PanicError carried by a failing Result.
func Execute(ctx context.Context, c Check) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = FromError(&PanicError{Value: v, Stack: debug.Stack()})
		}
	}()

	r, err := c.Check(ctx)
	if err != nil {
		return FromError(err)
	}
	return r
}

// PanicError wraps a value recovered from a panicking Check.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("check panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
