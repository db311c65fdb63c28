package resolve

// Result stores either the value produced by a call or the error it failed
// with. If Err is nil the call succeeded and Value may be read, even when the
// value itself is nil or a zero value.
type Result[T any] struct {
	err   error
	value T
}

// Ok constructs a result indicating success
func Ok[T any](value T) Result[T] {
	return Result[T]{
		value: value,
	}
}

// Fail constructs a result indicating failure. A nil err is normalized so the
// error slot of a failed result is never empty.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = Normalize(nil)
	}

	return Result[T]{
		err: err,
	}
}

// Unwrap returns the value and error slots, value first.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Value returns the value slot, the zero value of T on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error slot, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// IsOk reports whether the call succeeded.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether the call failed.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}
