package apiclient

// Result is the Ok | Err outcome of one call, for callers that collect
// several outcomes before deciding what to do with them.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Err[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Capture wraps a (value, error) pair.
func Capture[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// ValueOr returns fallback when the call failed.
func (r Result[T]) ValueOr(fallback T) T {
	if r.Err != nil {
		return fallback
	}
	return r.Value
}

// Kind is "" for a successful result.
func (r Result[T]) Kind() ErrorKind {
	return KindOf(r.Err)
}
