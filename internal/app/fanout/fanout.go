// Package fanout provides bounded-concurrency fan-out for application-layer
// orchestration. A Pool caps how many tasks run at once and may be shared by
// several callers; Run spreads a function over a slice of items on a Pool and
// returns the outcomes in input order.
//
// Saturation never rejects work: a task that finds the pool full waits for a
// slot until its context is done.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrTaskPanicked is wrapped by the Result error of a task whose function
// panicked.
var ErrTaskPanicked = errors.New("fanout: task panicked")

// Result holds the outcome of processing a single item.
// Either Value is populated (on success) or Err is non-nil (on failure).
type Result[R any] struct {
	Value R
	Err   error
}

// Pool is a bounded worker pool. The zero value is not usable; create one
// with NewPool. A Pool is safe for concurrent use and is meant to be shared,
// for example by the health and readiness controllers.
type Pool struct {
	size   int64
	sem    *semaphore.Weighted
	active atomic.Int64
}

// NewPool returns a pool that runs at most size tasks concurrently.
// A size below 1 is treated as 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Size returns the maximum number of concurrently running tasks.
func (p *Pool) Size() int { return int(p.size) }

// Active returns the number of tasks currently holding a slot.
func (p *Pool) Active() int { return int(p.active.Load()) }

// acquire blocks until a slot is free or ctx is done.
func (p *Pool) acquire(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	p.active.Add(1)
	return nil
}

func (p *Pool) release() {
	p.active.Add(-1)
	p.sem.Release(1)
}

// Run executes fn for each item in items on pool. Results are returned in
// the same order as the input items.
//
// If ctx is done while a task waits for a slot, that task records ctx.Err()
// and fn is not called for it. Tasks that already hold a slot run to
// completion; fn is responsible for honoring ctx. A panic in fn is recovered
// and reported as an error wrapping ErrTaskPanicked.
//
// Run blocks until every task completes. If items is empty, it returns an
// empty non-nil slice immediately.
func Run[T, R any](ctx context.Context, pool *Pool, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}

	results := make([]Result[R], len(items))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			if err := pool.acquire(ctx); err != nil {
				results[idx] = Result[R]{Err: err}
				return
			}
			defer pool.release()

			results[idx] = call(ctx, it, fn)
		}(i, item)
	}

	wg.Wait()
	return results
}

func call[T, R any](ctx context.Context, item T, fn func(context.Context, T) (R, error)) (res Result[R]) {
	defer func() {
		if v := recover(); v != nil {
			res = Result[R]{Err: fmt.Errorf("%w: %v\n%s", ErrTaskPanicked, v, debug.Stack())}
		}
	}()

	val, err := fn(ctx, item)
	return Result[R]{Value: val, Err: err}
}
