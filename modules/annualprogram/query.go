package annualprogram

import (
	"context"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
)

const (
	CriterionStatus   = "status"
	CriterionExecutor = "executorId"
	CriterionYear     = "year"
)

func QueryOptions(maxLimit int) []query.Option {
	return []query.Option{
		query.WithIDCheck(guard.ValidUUID),
		query.WithCriteriaGuard(criteriaGuard),
		query.WithDefaultOrderBy("-year,executorId"),
		query.WithSortable("year", "executorId", "status", "createdAt"),
		query.WithSelectable("id", "executorId", "year", "description", "budgetCap", "sharedRoles", "status", "createdAt", "updatedAt"),
		query.WithCountable("status", "executorId", "year"),
		query.WithMaxLimit(maxLimit),
	}
}

func criteriaGuard(c query.Criteria) guard.Outcome {
	var status any
	if c.Has(CriterionStatus) {
		status = c.List(CriterionStatus)
	}
	args := []guard.Argument{
		{Name: CriterionStatus, Value: status, Checks: []guard.CheckKind{guard.NotEmptyArray, guard.OneOf}, Extra: statusExtra()},
	}

	year, _ := c.Get(CriterionYear)
	if r, ok := year.(query.Range); ok {
		args = append(args,
			guard.Argument{Name: CriterionYear + ".from", Value: r.From, Checks: []guard.CheckKind{guard.PositiveInteger}},
			guard.Argument{Name: CriterionYear + ".to", Value: r.To, Checks: []guard.CheckKind{guard.PositiveInteger}},
		)
	} else {
		args = append(args, guard.Argument{Name: CriterionYear, Value: year, Checks: []guard.CheckKind{guard.PositiveInteger}})
	}
	return guard.Validate(args...)
}

func searchTaxonomy(v *taxonomy.Validator) func(context.Context, query.Props) result.Result[result.Void] {
	return func(ctx context.Context, props query.Props) result.Result[result.Void] {
		return v.Check(ctx, taxonomy.Ref{Target: CriterionExecutor, Group: taxonomy.GroupExecutor, Value: props.Criteria.List(CriterionExecutor)})
	}
}

// View is the output shape of an annual program.
type View struct {
	ID          string     `json:"id"`
	ExecutorID  string     `json:"executorId,omitempty"`
	Year        int        `json:"year,omitempty"`
	Description string     `json:"description,omitempty"`
	BudgetCap   *float64   `json:"budgetCap,omitempty"`
	SharedRoles []string   `json:"sharedRoles,omitempty"`
	Status      Status     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func ToView(_ context.Context, a *AnnualProgram, opts *query.FindOptions) (View, error) {
	sel := func(field string) bool { return opts == nil || opts.Selects(field) }

	v := View{ID: a.ID}
	if sel("executorId") {
		v.ExecutorID = a.ExecutorID
	}
	if sel("year") {
		v.Year = a.Year
	}
	if sel("description") {
		v.Description = a.Description
	}
	if sel("budgetCap") {
		b := a.BudgetCap
		v.BudgetCap = &b
	}
	if sel("sharedRoles") {
		v.SharedRoles = a.SharedRoles
	}
	if sel("status") {
		v.Status = a.status
	}
	if sel("createdAt") && !a.CreatedAt.IsZero() {
		t := a.CreatedAt
		v.CreatedAt = &t
	}
	if sel("updatedAt") && !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		v.UpdatedAt = &t
	}
	return v, nil
}
