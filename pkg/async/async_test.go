package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/async"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

func TestGo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := async.Go(ctx, func(context.Context) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	})
	v, err := f.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, f.IsComplete())
}

func TestGoRecoversPanics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := async.Go(ctx, func(context.Context) (int, error) {
		panic("boom")
	})
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, async.ErrPanic)
	assert.Contains(t, err.Error(), "boom")
}

func TestGoCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := make(chan struct{}, 1)
	f := async.Go(ctx, func(context.Context) (int, error) {
		called <- struct{}{}
		return 1, nil
	})
	_, err := f.Await(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, called)
}

func TestAwaitContextDone(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	f := async.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	errA, errB := errors.New("a"), errors.New("b")
	values, err := async.WaitAll(ctx,
		async.Go(ctx, func(context.Context) (int, error) { return 1, nil }),
		async.Go(ctx, func(context.Context) (int, error) { return 0, errA }),
		async.Go(ctx, func(context.Context) (int, error) { return 3, errB }),
	)
	assert.Equal(t, []int{1, 0, 3}, values)
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	missingID := func(context.Context) result.Result[result.Void] {
		return guard.Fail(guard.MissingValue("id")).Result()
	}
	slowMissingID := func(context.Context) result.Result[result.Void] {
		time.Sleep(5 * time.Millisecond)
		return guard.Fail(guard.MissingValue("id")).Result()
	}
	ok := func(context.Context) result.Result[result.Void] { return result.Succeed() }

	t.Run("all succeed", func(t *testing.T) {
		t.Parallel()
		assert.True(t, async.Validate(ctx, ok, ok, nil).IsSuccess())
		assert.True(t, async.Validate(ctx).IsSuccess())
	})

	t.Run("failures are merged and deduplicated", func(t *testing.T) {
		t.Parallel()

		res := async.Validate(ctx, slowMissingID, ok, missingID)
		require.True(t, res.IsFailure())
		assert.Equal(t, core.Failures{guard.MissingValue("id")}, res.Failures())
	})

	t.Run("panicking branch becomes unexpected", func(t *testing.T) {
		t.Parallel()

		res := async.Validate(ctx, ok, func(context.Context) result.Result[result.Void] { panic("taxonomy down") })
		require.True(t, res.IsFailure())
		assert.True(t, res.Failures().HasCode(core.CodeUnexpected))
	})
}
