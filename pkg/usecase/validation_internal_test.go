package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	opts, err := build(func() result.Result[*query.FindOptions] { return query.FindOne(query.Props{}) })
	require.NoError(t, err)
	assert.Equal(t, 1, opts.Limit())

	_, err = build(func() result.Result[*query.FindOptions] {
		return query.FindOne(query.Props{Offset: -1})
	})
	assert.True(t, core.IsUnexpected(err), "input that passed validation but fails the build is a defect")
}

func TestValidateCombinesGuardAndValidators(t *testing.T) {
	t.Parallel()

	valid := validate(context.Background(), "cmd",
		func() guard.Outcome { return guard.Fail(guard.MissingValue("id")) },
		[]Validator[string]{
			nil,
			func(context.Context, string) result.Result[result.Void] {
				return guard.Fail(guard.InvalidInput("expand", "expand is unknown")).Result()
			},
		},
	)
	require.True(t, valid.IsFailure())
	assert.ElementsMatch(t, []string{"id", "expand"}, valid.Failures().Targets())
}
