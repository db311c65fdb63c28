package pipe

import (
	"context"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/resolve/pkg/resolve"
)

// Error is the class of errors produced by this package.
var Error = errs.Class("pipe")

// ErrUnsettled is reported by a Future that closed without a result.
var ErrUnsettled = Error.New("future closed before settling")

// Future delivers at most one result and is then closed.
type Future[T any] <-chan resolve.Result[T]

// Await blocks until the future settles or ctx is done. The result is
// consumed by the first call.
func (f Future[T]) Await(ctx context.Context) (T, error) {
	var zero T

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res, ok := <-f:
		if !ok {
			return zero, ErrUnsettled
		}
		return res.Unwrap()
	}
}

// AsyncResult runs fn on its own goroutine. If done is closed before fn
// returns, the result is dropped and the future closes empty.
func AsyncResult[T any](done <-chan struct{}, fn func() (T, error)) Future[T] {
	out := make(chan resolve.Result[T], 1)

	go func() {
		defer close(out)

		res := resolve.Try(fn)

		select {
		case <-done:
		default:
			out <- res
		}
	}()

	return out
}
