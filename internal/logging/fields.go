package logging

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/Philanthropists/resolve/pkg/resolve"
)

func Any[S ~string](s S, v any) Field {
	return zap.Any(string(s), v)
}

func Int[S ~string, T constraints.Signed](s S, v T) Field {
	return zap.Int64(string(s), int64(v))
}

func Error(err error) Field {
	return zap.Error(err)
}

func String[U, V ~string](s U, v V) Field {
	return zap.String(string(s), string(v))
}

// Fault describes err, adding the thrown type and value when err was built
// from a non-error panic or rejection.
func Fault(err error) []Field {
	fields := []Field{Error(err)}

	var thrown *resolve.ThrownError
	if errors.As(err, &thrown) {
		fields = append(fields,
			String("thrown_type", thrown.Type),
			Any("thrown_value", thrown.Value),
		)
	}

	return fields
}
