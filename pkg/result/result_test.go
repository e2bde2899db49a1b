package result_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

func TestOk(t *testing.T) {
	t.Parallel()

	for _, v := range []any{0, "", "value", 3.14, nil, []int{1}} {
		r := result.Ok(v)
		assert.True(t, r.IsSuccess())
		assert.False(t, r.IsFailure())
		assert.Equal(t, v, r.Value())
		assert.NoError(t, r.Err())
	}

	assert.True(t, result.Succeed().IsSuccess())
}

func TestFail(t *testing.T) {
	t.Parallel()

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		r := result.Fail[int](err)
		assert.True(t, r.IsFailure())
		assert.ErrorIs(t, r.Err(), err)
		assert.Equal(t, core.CodeUnexpected, r.Failures()[0].Code)
	})

	t.Run("failures", func(t *testing.T) {
		t.Parallel()
		fs := core.Failures{core.NewFailure(core.CodeMissingValue, "id", "id is required")}
		r := result.Fail[string](fs)
		assert.Equal(t, fs, r.Failures())
	})

	t.Run("nil error panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { result.Fail[int](nil) })
		assert.Panics(t, func() { result.Fail[int](core.Failures(nil)) })
	})

	t.Run("value of failure panics with serialized error", func(t *testing.T) {
		t.Parallel()
		r := result.Fail[int](core.Failures{core.NewFailure(core.CodeInvalidInput, "limit", "must be positive")})
		assert.PanicsWithValue(t,
			`result: cannot get the value of a failed result: [{"target":"limit","code":"invalidInput","message":"must be positive"}]`,
			func() { r.Value() },
		)
	})
}

func TestCombine(t *testing.T) {
	t.Parallel()

	a := core.NewFailure(core.CodeMissingValue, "id", "id is required")
	b := core.NewFailure(core.CodeInvalidInput, "limit", "limit must be zero or positive")

	t.Run("all successes", func(t *testing.T) {
		t.Parallel()
		r := result.Combine(result.Succeed(), result.Ok("x"), result.Ok(1))
		assert.True(t, r.IsSuccess())
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()
		assert.True(t, result.Combine().IsSuccess())
	})

	t.Run("identical failures collapse", func(t *testing.T) {
		t.Parallel()
		r := result.Combine(result.Fail[int](a), result.Fail[string](a))
		require.True(t, r.IsFailure())
		assert.Equal(t, core.Failures{a}, r.Failures())
	})

	t.Run("failures are unioned in order", func(t *testing.T) {
		t.Parallel()
		r := result.Combine(
			result.Fail[int](core.Failures{a, b}),
			result.Ok(2),
			result.Fail[int](b),
		)
		assert.Equal(t, core.Failures{a, b}, r.Failures())
	})

	t.Run("order does not change membership", func(t *testing.T) {
		t.Parallel()
		left := result.Combine(result.Fail[int](a), result.Fail[int](b))
		right := result.Combine(result.Fail[int](b), result.Fail[int](a))
		assert.ElementsMatch(t, left.Failures(), right.Failures())
	})

	t.Run("combine for error", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, result.CombineForError(result.Ok(1)))
		err := result.CombineForError(result.Fail[int](core.Failures{a, a}))
		assert.Equal(t, core.Failures{a}, err)
	})
}

func TestCombinators(t *testing.T) {
	t.Parallel()

	double := func(v int) int { return v * 2 }
	parse := func(s string) result.Result[int] {
		v, err := strconv.Atoi(s)
		return result.FromError(v, err)
	}

	assert.Equal(t, 4, result.Map(result.Ok(2), double).Value())
	assert.True(t, result.Map(result.Fail[int](errors.New("x")), double).IsFailure())

	assert.Equal(t, 42, result.FlatMap(result.Ok("42"), parse).Value())
	assert.True(t, result.FlatMap(result.Ok("nope"), parse).IsFailure())

	label := result.Match(result.Fail[int](errors.New("boom")),
		func(v int) string { return strconv.Itoa(v) },
		func(err error) string { return "failed: " + err.Error() },
	)
	assert.Equal(t, "failed: boom", label)

	assert.Equal(t, 7, result.Fail[int](errors.New("x")).OrElse(7))

	v, err := result.Ok("x").Get()
	assert.Equal(t, "x", v)
	assert.NoError(t, err)
}
