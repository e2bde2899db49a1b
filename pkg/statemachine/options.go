package statemachine

import (
	"fmt"
)

// Option configures a state machine during construction.
type Option[E Stateful[S], S ~string] func(*Machine[E, S]) error

// New builds a machine from its transition table. Table order matters:
// lookups use the first matching row.
func New[E Stateful[S], S ~string](opts ...Option[E, S]) (*Machine[E, S], error) {
	m := &Machine[E, S]{}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics on an invalid table.
func MustNew[E Stateful[S], S ~string](opts ...Option[E, S]) *Machine[E, S] {
	m, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTransition appends one transition to the table.
func WithTransition[E Stateful[S], S ~string](t Transition[E, S]) Option[E, S] {
	return func(m *Machine[E, S]) error {
		if t.To == "" || len(t.From) == 0 || containsEmpty(t.From) {
			return ErrInvalidTransition
		}
		m.transitions = append(m.transitions, t)
		return nil
	}
}

// WithTransitions appends transitions to the table, in order.
func WithTransitions[E Stateful[S], S ~string](transitions ...Transition[E, S]) Option[E, S] {
	return func(m *Machine[E, S]) error {
		for i, t := range transitions {
			if err := WithTransition(t)(m); err != nil {
				return fmt.Errorf("failed to add transition[%d] %v->%s: %w", i, t.From, t.To, err)
			}
		}
		return nil
	}
}

func containsEmpty[S ~string](states []S) bool {
	for _, s := range states {
		if s == "" {
			return true
		}
	}
	return false
}
