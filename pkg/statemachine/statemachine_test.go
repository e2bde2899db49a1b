package statemachine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/statemachine"
)

type status string

const (
	planned    status = "planned"
	programmed status = "programmed"
	postponed  status = "postponed"
	canceled   status = "canceled"
)

type project struct {
	status  status
	history []status
}

func (p *project) Status() status { return p.status }

func (p *project) SetStatus(s status) {
	p.history = append(p.history, p.status)
	p.status = s
}

type transition = statemachine.Transition[*project, status]

func newMachine(t *testing.T, extra ...transition) *statemachine.Machine[*project, status] {
	t.Helper()

	table := append([]transition{
		{From: []status{planned}, To: programmed},
		{From: []status{programmed}, To: planned},
	}, extra...)
	m, err := statemachine.New(statemachine.WithTransitions(table...))
	require.NoError(t, err)
	return m
}

func TestTransit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("legal transition updates status", func(t *testing.T) {
		t.Parallel()

		p := &project{status: planned}
		res := newMachine(t).Transit(ctx, p, programmed, nil)
		require.True(t, res.IsSuccess())
		assert.Equal(t, programmed, res.Value().Status())
		assert.Equal(t, []status{planned}, p.history)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		t.Parallel()

		p := &project{status: planned}
		res := newMachine(t).Transit(ctx, p, planned, nil)
		require.True(t, res.IsSuccess())
		assert.Equal(t, planned, res.Value().Status())
		assert.Empty(t, p.history)
	})

	t.Run("same status skips a matching row", func(t *testing.T) {
		t.Parallel()

		var runs int
		m := newMachine(t, transition{
			From: []status{canceled},
			To:   canceled,
			Run: func(_ context.Context, p *project, _ status, _ statemachine.Options) result.Result[*project] {
				runs++
				return result.Ok(p)
			},
		})
		require.True(t, m.Transit(ctx, &project{status: canceled}, canceled, nil).IsSuccess())
		assert.Zero(t, runs)
	})

	t.Run("unknown transition fails", func(t *testing.T) {
		t.Parallel()

		p := &project{status: planned}
		res := newMachine(t).Transit(ctx, p, postponed, nil)
		require.True(t, res.IsFailure())

		failures := res.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, core.CodeInvalidStatusTransition, failures[0].Code)
		assert.Contains(t, failures[0].Message, "from 'planned'")
		assert.Contains(t, failures[0].Message, "to 'postponed'")
		assert.Equal(t, planned, p.status)
	})

	t.Run("first match wins", func(t *testing.T) {
		t.Parallel()

		var used []string
		run := func(name string) statemachine.RunFunc[*project, status] {
			return func(_ context.Context, p *project, to status, _ statemachine.Options) result.Result[*project] {
				used = append(used, name)
				p.SetStatus(to)
				return result.Ok(p)
			}
		}
		m := newMachine(t,
			transition{From: []status{planned, programmed}, To: postponed, Run: run("first")},
			transition{From: []status{planned}, To: postponed, Run: run("second")},
		)
		require.True(t, m.Transit(ctx, &project{status: planned}, postponed, nil).IsSuccess())
		assert.Equal(t, []string{"first"}, used)
	})

	t.Run("run receives options", func(t *testing.T) {
		t.Parallel()

		m := newMachine(t, transition{
			From: []status{planned},
			To:   canceled,
			Run: func(_ context.Context, p *project, to status, opts statemachine.Options) result.Result[*project] {
				if opts["reason"] == nil {
					return result.Fail[*project](guard.MissingValue("reason"))
				}
				p.SetStatus(to)
				return result.Ok(p)
			},
		})

		res := m.Transit(ctx, &project{status: planned}, canceled, nil)
		require.True(t, res.IsFailure())
		assert.True(t, res.Failures().Has("reason"))

		res = m.Transit(ctx, &project{status: planned}, canceled, statemachine.Options{"reason": "budget"})
		require.True(t, res.IsSuccess())
		assert.Equal(t, canceled, res.Value().Status())
	})

	t.Run("guards reject before running", func(t *testing.T) {
		t.Parallel()

		m := newMachine(t, transition{
			From: []status{programmed},
			To:   postponed,
			Guards: []statemachine.GuardFunc[*project]{
				func(_ context.Context, p *project) guard.Outcome {
					return guard.When(len(p.history) > 0, guard.BusinessRule("status", "project was never planned"))
				},
			},
		})

		p := &project{status: programmed}
		res := m.Transit(ctx, p, postponed, nil)
		require.True(t, res.IsFailure())
		assert.Equal(t, core.CodeBusinessRule, res.Failures()[0].Code)
		assert.Equal(t, programmed, p.status)
	})
}

type readOnly struct{ s status }

func (r readOnly) Status() status { return r.s }

func TestDefaultRunNeedsSetter(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(statemachine.WithTransition(
		statemachine.Transition[readOnly, status]{From: []status{planned}, To: programmed},
	))
	res := m.Transit(context.Background(), readOnly{s: planned}, programmed, nil)
	require.True(t, res.IsFailure())
	assert.Equal(t, core.CodeUnexpected, res.Failures()[0].Code)
}

func TestExecute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newMachine(t)

	p, err := m.Execute(ctx, &project{status: planned}, programmed, nil)
	require.NoError(t, err)
	assert.Equal(t, programmed, p.Status())

	_, err = m.Execute(ctx, &project{status: planned}, postponed, nil)
	require.Error(t, err)
	assert.True(t, statemachine.IsInvalidTransitionError(err))
	assert.Equal(t, "invalid status transition from 'planned' to 'postponed'", err.Error())

	failures := core.AsFailures(err)
	require.Len(t, failures, 1)
	assert.Equal(t, core.CodeInvalidStatusTransition, failures[0].Code)
	assert.Equal(t, 422, core.StatusFor(err))
}

func TestIsStateTransitionPossible(t *testing.T) {
	t.Parallel()
	m := newMachine(t)

	assert.True(t, m.IsStateTransitionPossible(planned, programmed))
	assert.True(t, m.IsStateTransitionPossible(programmed, planned))
	assert.True(t, m.IsStateTransitionPossible(postponed, postponed))
	assert.False(t, m.IsStateTransitionPossible(planned, postponed))
}

func TestTargets(t *testing.T) {
	t.Parallel()

	m := newMachine(t,
		transition{From: []status{planned, programmed}, To: canceled},
		transition{From: []status{planned}, To: programmed},
	)
	assert.Equal(t, []status{programmed, canceled}, m.Targets(planned))
	assert.Equal(t, []status{planned, canceled}, m.Targets(programmed))
	assert.Empty(t, m.Targets(postponed))
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New(statemachine.WithTransitions(transition{From: []status{planned}}))
	require.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	_, err = statemachine.New(statemachine.WithTransition(transition{To: planned}))
	require.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	assert.Panics(t, func() {
		statemachine.MustNew(statemachine.WithTransition(transition{From: []status{""}, To: planned}))
	})
}
