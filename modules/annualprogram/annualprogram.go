package annualprogram

import (
	"context"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/statemachine"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
)

type Status string

const (
	StatusNew            Status = "new"
	StatusProgramming    Status = "programming"
	StatusSubmittedFinal Status = "submittedFinal"
)

var Statuses = []Status{StatusNew, StatusProgramming, StatusSubmittedFinal}

// AnnualProgram groups the program books of an executor for one year.
type AnnualProgram struct {
	ID          string
	ExecutorID  string
	Year        int
	Description string
	BudgetCap   float64
	SharedRoles []string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	status Status
}

func (a *AnnualProgram) Status() Status     { return a.status }
func (a *AnnualProgram) SetStatus(s Status) { a.status = s }

type Props struct {
	ID          string
	ExecutorID  string
	Year        int
	Description string
	BudgetCap   float64
	SharedRoles []string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func Guard(props Props) guard.Outcome {
	return guard.Validate(
		guard.Argument{Name: "id", Value: props.ID, Checks: []guard.CheckKind{guard.Required, guard.ValidUUID}},
		guard.Argument{Name: "executorId", Value: props.ExecutorID, Checks: []guard.CheckKind{guard.NotEmptyString}},
		guard.Argument{Name: "year", Value: props.Year, Checks: []guard.CheckKind{guard.PositiveInteger, guard.InRange}, Extra: guard.Extra(2000, 2100)},
		guard.Argument{Name: "budgetCap", Value: props.BudgetCap, Checks: []guard.CheckKind{guard.ZeroOrPositive}},
		guard.Argument{Name: "status", Value: string(props.Status), Checks: []guard.CheckKind{guard.OneOf}, Extra: statusExtra()},
	)
}

// New builds an annual program; status defaults to new.
func New(props Props) result.Result[*AnnualProgram] {
	if props.Status == "" {
		props.Status = StatusNew
	}
	if o := Guard(props); o.IsFailure() {
		return result.Fail[*AnnualProgram](o.Failures)
	}
	return result.Ok(&AnnualProgram{
		ID:          props.ID,
		ExecutorID:  props.ExecutorID,
		Year:        props.Year,
		Description: props.Description,
		BudgetCap:   props.BudgetCap,
		SharedRoles: props.SharedRoles,
		CreatedAt:   props.CreatedAt,
		UpdatedAt:   props.UpdatedAt,
		status:      props.Status,
	})
}

func TaxonomyRefs(props Props) []taxonomy.Ref {
	return []taxonomy.Ref{{Target: "executorId", Group: taxonomy.GroupExecutor, Value: props.ExecutorID}}
}

type transition = statemachine.Transition[*AnnualProgram, Status]

// NewMachine builds the annual program status table. Transitions use the
// default status setter.
func NewMachine() *statemachine.Machine[*AnnualProgram, Status] {
	return statemachine.MustNew(statemachine.WithTransitions(
		transition{From: []Status{StatusNew}, To: StatusProgramming},
		transition{From: []Status{StatusProgramming}, To: StatusNew},
		transition{From: []Status{StatusProgramming}, To: StatusSubmittedFinal, Guards: []statemachine.GuardFunc[*AnnualProgram]{hasBudget}},
		transition{From: []Status{StatusSubmittedFinal}, To: StatusProgramming},
	))
}

func hasBudget(_ context.Context, a *AnnualProgram) guard.Outcome {
	return guard.When(a.BudgetCap > 0, guard.BusinessRule("budgetCap", "an annual program needs a budget cap to be submitted"))
}

func statusExtra() []any {
	extra := make([]any, 0, len(Statuses))
	for _, s := range Statuses {
		extra = append(extra, string(s))
	}
	return extra
}
