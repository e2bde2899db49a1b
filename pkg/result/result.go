package result

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
)

// Void is the value type of results that carry no payload.
type Void = struct{}

// Result is an immutable success/failure container.
// Exactly one of value and err is meaningful; constructors enforce it.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Outcome is satisfied by every Result regardless of its value type, which
// lets Combine merge results of unrelated types.
type Outcome interface {
	IsFailure() bool
	Err() error
}

// Ok creates a successful result.
func Ok[T any](value T) Result[T] {
	return build(true, value, nil)
}

// Succeed creates a successful result without a payload.
func Succeed() Result[Void] {
	return build(true, Void{}, nil)
}

// Fail creates a failed result. A nil or empty error is a programming error and panics.
func Fail[T any](err error) Result[T] {
	var zero T
	return build(false, zero, err)
}

// build enforces the success/failure invariant and panics on violation.
func build[T any](ok bool, value T, err error) Result[T] {
	if ok && !isEmptyError(err) {
		panic(fmt.Sprintf("result: a successful result cannot carry an error: %v", err))
	}
	if !ok && isEmptyError(err) {
		panic("result: a failed result needs a non-empty error")
	}
	return Result[T]{value: value, err: err, ok: ok}
}

func isEmptyError(err error) bool {
	if err == nil {
		return true
	}
	var fs core.Failures
	if errors.As(err, &fs) && len(fs) == 0 {
		return true
	}
	return false
}

func (r Result[T]) IsSuccess() bool {
	return r.ok
}

func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// Value returns the success value. Calling it on a failure is a programming
// error: it panics with the serialized error attached.
func (r Result[T]) Value() T {
	if !r.ok {
		panic(fmt.Sprintf("result: cannot get the value of a failed result: %s", serialize(r.err)))
	}
	return r.value
}

// Err returns the error of a failure, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Failures returns the error of a failure flattened into failures.
func (r Result[T]) Failures() core.Failures {
	return core.AsFailures(r.err)
}

// Get unpacks the result at a boundary that speaks (value, error).
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// OrElse returns the success value or the provided default if failure.
func (r Result[T]) OrElse(defaultValue T) T {
	if r.ok {
		return r.value
	}
	return defaultValue
}

func serialize(err error) string {
	if err == nil {
		return "<nil>"
	}
	if b, jerr := json.Marshal(core.AsFailures(err)); jerr == nil {
		return string(b)
	}
	return err.Error()
}
