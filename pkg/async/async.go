package async

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// Future holds the eventual value of a computation started by Go.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Go runs fn in its own goroutine. A panic inside fn completes the future
// with an error wrapping ErrPanic instead of crashing the process.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		// Skip the work entirely when the caller already gave up
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.value, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the computation completes or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// IsComplete reports whether the computation finished, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll waits for every future and returns the values in order. Errors are
// joined; a failing future does not stop the others from being awaited.
func WaitAll[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	values := make([]T, len(futures))
	var errs []error
	for i, f := range futures {
		v, err := f.Await(ctx)
		values[i] = v
		if err != nil {
			errs = append(errs, err)
		}
	}
	return values, errors.Join(errs...)
}

// Check is an independent validation branch.
type Check func(context.Context) result.Result[result.Void]

// Validate runs the checks concurrently and joins them into one result with
// result.Combine. A check that errors or panics contributes an unexpected
// failure; nil checks are skipped.
func Validate(ctx context.Context, checks ...Check) result.Result[result.Void] {
	futures := make([]*Future[result.Result[result.Void]], 0, len(checks))
	for _, check := range checks {
		if check == nil {
			continue
		}
		futures = append(futures, Go(ctx, func(ctx context.Context) (result.Result[result.Void], error) {
			return check(ctx), nil
		}))
	}

	outcomes := make([]result.Outcome, 0, len(futures))
	for _, f := range futures {
		res, err := f.Await(ctx)
		if err != nil {
			res = result.Fail[result.Void](core.NewFailure(core.CodeUnexpected, "", err.Error()))
		}
		outcomes = append(outcomes, res)
	}
	return result.Combine(outcomes...)
}
