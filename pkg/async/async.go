package async

import (
	"context"
	"time"
)

// Future represents an in-flight asynchronous operation that resolves to an error.
// The zero value is not usable; obtain futures from Exec.
type Future struct {
	err  error
	done chan struct{}
}

// Await blocks until the operation completes and returns its error.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout blocks until the operation completes or the timeout elapses.
// Returns ErrTimeout if the timeout fires first; the operation keeps running.
func (f *Future) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete reports whether the operation has finished, without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn on its own goroutine and returns a Future for its result.
// Callers that treat the operation as fire-and-forget simply discard the
// returned future; the error remains available to anyone who kept it.
func Exec(ctx context.Context, fn func(context.Context) error) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Pre-cancelled contexts resolve immediately without invoking fn.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.err = fn(ctx)
	}()

	return f
}
