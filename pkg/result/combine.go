package result

import "github.com/Ahryman40k/angular-bootstrap-example-sub014/core"

// Combine walks every result and merges their failures, dropping repeats that
// share both message and target. It succeeds only when no result failed.
// Order of the inputs only affects the order of the returned failures.
func Combine(outcomes ...Outcome) Result[Void] {
	var failures core.Failures
	for _, o := range outcomes {
		if o == nil || !o.IsFailure() {
			continue
		}
		failures = append(failures, core.AsFailures(o.Err())...)
	}

	if len(failures) == 0 {
		return Succeed()
	}
	return Fail[Void](failures.Dedupe())
}

// CombineForError is Combine over a single result, returning only the merged error.
func CombineForError(o Outcome) error {
	return Combine(o).Err()
}

// Map transforms a successful result's value using the provided function.
// If the result is a failure, it returns the failure unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsFailure() {
		return Fail[U](r.err)
	}
	return Ok(fn(r.value))
}

// FlatMap chains result-returning operations.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsFailure() {
		return Fail[U](r.err)
	}
	return fn(r.value)
}

// Match applies one of two functions depending on success/failure state.
func Match[T, U any](r Result[T], onSuccess func(T) U, onFailure func(error) U) U {
	if r.IsSuccess() {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}

// FromError builds a result from a conventional (value, error) pair.
func FromError[T any](value T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(value)
}
