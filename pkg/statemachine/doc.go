// Package statemachine governs entity lifecycles through an ordered table of
// status transitions.
//
// A Transition lists the statuses it accepts (From), the status it leads to
// (To) and the function performing the change (Run). Lookup is first-match on
// "From contains the current status and To equals the target". Without a Run
// the entity's SetStatus method is used.
//
// # Usage
//
//	type Status string
//
//	machine := statemachine.MustNew(statemachine.WithTransitions(
//	    statemachine.Transition[*Project, Status]{From: []Status{Planned}, To: Programmed},
//	    statemachine.Transition[*Project, Status]{From: []Status{Programmed}, To: Planned},
//	))
//
//	res := machine.Transit(ctx, project, Programmed, nil)
//	if res.IsFailure() {
//	    return res.Failures()
//	}
//
// Transit never returns an error value outside the result: an illegal move
// fails with a core.CodeInvalidStatusTransition failure. Execute is the
// adapter for callers wanting (entity, error); it reports illegal moves as
// *InvalidTransitionError, which IsInvalidTransitionError detects.
//
// Requesting the status the entity already has always succeeds without
// running anything, even when the table has a row for it.
//
// A Machine holds no mutable state after construction and can be shared by
// concurrent callers.
package statemachine
