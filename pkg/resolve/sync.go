package resolve

// Sync invokes fn and captures its return value, or the panic it raised.
// Pass a method value to keep the receiver bound.
func Sync[T any](fn func() T) Result[T] {
	return Try(func() (T, error) {
		return fn(), nil
	})
}

// Call1 invokes fn with a through Sync.
func Call1[A, T any](fn func(A) T, a A) Result[T] {
	return Sync(func() T {
		return fn(a)
	})
}

// Call2 invokes fn with a and b through Sync.
func Call2[A, B, T any](fn func(A, B) T, a A, b B) Result[T] {
	return Sync(func() T {
		return fn(a, b)
	})
}

// Call3 invokes fn with a, b and c through Sync.
func Call3[A, B, C, T any](fn func(A, B, C) T, a A, b B, c C) Result[T] {
	return Sync(func() T {
		return fn(a, b, c)
	})
}

// CallN forwards args to a variadic fn.
func CallN[A, T any](fn func(...A) T, args ...A) Result[T] {
	return Sync(func() T {
		return fn(args...)
	})
}
