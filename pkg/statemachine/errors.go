package statemachine

import (
	"errors"
	"fmt"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
)

var ErrInvalidTransition = errors.New("invalid transition: from and to statuses are required")

// InvalidTransitionError is returned by Execute when no transition leads
// from the current status to the requested one.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from '%s' to '%s'", e.From, e.To)
}

// Unwrap exposes the failure so core.AsFailures and the HTTP mapper see it.
func (e *InvalidTransitionError) Unwrap() error {
	return invalidTransition(e.From, e.To)
}

func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func invalidTransition[S ~string](from, to S) core.Failure {
	return core.NewFailure(
		core.CodeInvalidStatusTransition,
		"status",
		fmt.Sprintf("invalid status transition from '%s' to '%s'", from, to),
	)
}
