package pipe

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Philanthropists/resolve/internal/logging"
	"github.com/Philanthropists/resolve/pkg/resolve"
)

// WithLogger attaches logger to ctx for the stages that log. A nil logger
// leaves ctx untouched.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		return ctx
	}

	return logging.Wrap(logger).GetContext(ctx)
}

// LogErrors streams the values of successful results and logs every failure
// together with a running failure count. It logs on the logger attached with
// WithLogger, or on the default logger configured from the environment. The
// stage stops when ctx is done.
func LogErrors[T any](ctx context.Context, in <-chan resolve.Result[T]) <-chan T {
	log := logging.FromContext(ctx)

	var failures atomic.Int64

	return OnError(ctx.Done(), in, func(err error) {
		n := failures.Add(1)
		log.Warn("pipeline stage failed", append(logging.Fault(err), logging.Int("failure", n))...)
	})
}
