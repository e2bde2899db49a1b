package statemachine

import (
	"context"
	"slices"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// Stateful is an entity whose lifecycle is driven by a status.
type Stateful[S ~string] interface {
	Status() S
}

// StatusSetter is implemented by entities the default transition can mutate.
type StatusSetter[S ~string] interface {
	SetStatus(S)
}

// Options carries caller-supplied context for a transition run.
type Options map[string]any

// RunFunc performs the transition. It is the only place an entity status changes.
type RunFunc[E Stateful[S], S ~string] func(ctx context.Context, entity E, target S, opts Options) result.Result[E]

// GuardFunc rejects a matched transition with failures, before it runs.
type GuardFunc[E any] func(ctx context.Context, entity E) guard.Outcome

// Transition is one row of the transition table.
type Transition[E Stateful[S], S ~string] struct {
	From   []S
	To     S
	Run    RunFunc[E, S] // nil sets the status through StatusSetter
	Guards []GuardFunc[E]
}

func (t Transition[E, S]) matches(from, to S) bool {
	return t.To == to && slices.Contains(t.From, from)
}

// Transitioner is implemented by Machine. Transit is the composable variant,
// Execute the error-returning one.
type Transitioner[E Stateful[S], S ~string] interface {
	Transit(ctx context.Context, entity E, target S, opts Options) result.Result[E]
	Execute(ctx context.Context, entity E, target S, opts Options) (E, error)
	IsStateTransitionPossible(from, to S) bool
	Targets(from S) []S
}

// Machine resolves transitions against an ordered table. The table is fixed
// after construction, so a Machine is safe for concurrent use without locking.
type Machine[E Stateful[S], S ~string] struct {
	transitions []Transition[E, S]
}

var _ Transitioner[Stateful[string], string] = (*Machine[Stateful[string], string])(nil)

// Transit moves entity to target.
//
// Requesting the current status is always a no-op success, whatever the
// table says. Otherwise the first transition whose From contains the current
// status and whose To equals target runs; without one the result fails with
// an InvalidStatusTransition failure citing both statuses.
func (m *Machine[E, S]) Transit(ctx context.Context, entity E, target S, opts Options) result.Result[E] {
	from := entity.Status()
	if from == target {
		return result.Ok(entity)
	}

	t, ok := m.lookup(from, target)
	if !ok {
		return result.Fail[E](invalidTransition(from, target))
	}

	for _, g := range t.Guards {
		if outcome := g(ctx, entity); !outcome.Succeeded {
			return result.Fail[E](outcome.Failures)
		}
	}

	run := t.Run
	if run == nil {
		run = SetStatus[E, S]
	}
	return run(ctx, entity, target, opts)
}

// Execute is Transit for callers that prefer a plain error. An illegal
// transition is reported as *InvalidTransitionError; other failures are
// returned unchanged.
func (m *Machine[E, S]) Execute(ctx context.Context, entity E, target S, opts Options) (E, error) {
	res := m.Transit(ctx, entity, target, opts)
	if res.IsSuccess() {
		return res.Value(), nil
	}

	var zero E
	if !m.IsStateTransitionPossible(entity.Status(), target) {
		return zero, &InvalidTransitionError{From: string(entity.Status()), To: string(target)}
	}
	return zero, res.Err()
}

// IsStateTransitionPossible reports whether Transit could move from to to,
// without running anything. Staying on the same status is always possible.
func (m *Machine[E, S]) IsStateTransitionPossible(from, to S) bool {
	if from == to {
		return true
	}
	_, ok := m.lookup(from, to)
	return ok
}

// Targets lists the statuses reachable from from, in table order.
func (m *Machine[E, S]) Targets(from S) []S {
	var targets []S
	for _, t := range m.transitions {
		if slices.Contains(t.From, from) && !slices.Contains(targets, t.To) {
			targets = append(targets, t.To)
		}
	}
	return targets
}

func (m *Machine[E, S]) lookup(from, to S) (Transition[E, S], bool) {
	for _, t := range m.transitions {
		if t.matches(from, to) {
			return t, true
		}
	}
	return Transition[E, S]{}, false
}

// SetStatus is the default RunFunc. The entity must implement StatusSetter.
func SetStatus[E Stateful[S], S ~string](_ context.Context, entity E, target S, _ Options) result.Result[E] {
	setter, ok := any(entity).(StatusSetter[S])
	if !ok {
		return result.Fail[E](guard.Unexpected("status", "entity does not support status changes"))
	}
	setter.SetStatus(target)
	return result.Ok(entity)
}
