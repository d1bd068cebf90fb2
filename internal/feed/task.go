package feed

import (
	"context"
	"time"
)

// Clock is the timer source for delayed work.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock uses the wall clock.
var RealClock Clock = realClock{}

// Task runs a function once after a delay and holds its result.
type Task[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	val    T
	err    error
}

// StartTask schedules fn to run after delay on its own goroutine.
func StartTask[T any](clock Clock, delay time.Duration, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task[T]{done: make(chan struct{}), cancel: cancel}
	timer := clock.After(delay)

	go func() {
		defer close(t.done)
		defer cancel()
		select {
		case <-timer:
			t.val, t.err = fn(ctx)
		case <-ctx.Done():
			t.err = ctx.Err()
		}
	}()
	return t
}

// Wait blocks until the task finished or ctx ends.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel stops a task still waiting out its delay. A running fn sees its ctx canceled.
func (t *Task[T]) Cancel() { t.cancel() }

func (t *Task[T]) Done() <-chan struct{} { return t.done }
