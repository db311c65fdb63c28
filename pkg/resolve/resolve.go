// Package resolve turns calls that may panic or fail into explicit Result
// values. Every adapter is total: it always returns a Result and never
// panics.
package resolve

import (
	"context"

	"github.com/sourcegraph/conc/panics"
)

// Pending is a computation whose outcome becomes available later.
type Pending[T any] interface {
	Await(ctx context.Context) (T, error)
}

// PendingFunc adapts a plain function to Pending.
type PendingFunc[T any] func(ctx context.Context) (T, error)

func (f PendingFunc[T]) Await(ctx context.Context) (T, error) {
	return f(ctx)
}

// Async waits for p to settle and captures its outcome. ctx is handed to p
// as is; cancellation is whatever p reports for it.
func Async[T any](ctx context.Context, p Pending[T]) Result[T] {
	return Try(func() (T, error) {
		return p.Await(ctx)
	})
}

// Try invokes fn on the calling goroutine. A returned error is kept as is and
// a panic is normalized.
func Try[T any](fn func() (T, error)) Result[T] {
	var (
		value T
		err   error
		c     panics.Catcher
	)

	c.Try(func() {
		value, err = fn()
	})

	if rp := c.Recovered(); rp != nil {
		return Fail[T](fromRecovered(rp))
	}

	if err != nil {
		return Fail[T](err)
	}

	return Ok(value)
}
