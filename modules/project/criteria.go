package project

import (
	"context"
	"slices"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
)

// Search criteria keys.
const (
	CriterionStatus     = "status"
	CriterionBorough    = "boroughId"
	CriterionExecutor   = "executorId"
	CriterionType       = "typeId"
	CriterionStartYear  = "startYear"
	CriterionSearchText = "q"
)

// Expandable relations.
const ExpandInterventions = "interventions"

var (
	sortableFields = []string{"id", "name", "status", "boroughId", "executorId", "typeId", "startYear", "endYear", "createdAt", "updatedAt"}
	fieldNames     = []string{"id", "name", "status", "boroughId", "executorId", "typeId", "startYear", "endYear", "geometry", "interventions", "history", "createdAt", "updatedAt"}
	countable      = []string{"status", "boroughId", "executorId", "typeId", "startYear"}
)

var defaultStatuses = []string{
	string(StatusWished),
	string(StatusPlanned),
	string(StatusReplanned),
	string(StatusPostponed),
	string(StatusProgrammed),
	string(StatusPreliminaryOrdered),
	string(StatusFinalOrdered),
}

// QueryOptions returns the find-option policy of projects.
func QueryOptions(maxLimit int) []query.Option {
	return []query.Option{
		query.WithIDCheck(guard.MatchesPattern, IDPattern),
		query.WithCriteriaGuard(CriteriaGuard),
		query.WithDefaultCriteria(defaultCriteria),
		query.WithDefaultOrderBy("-startYear,id"),
		query.WithSortable(sortableFields...),
		query.WithExpandable(ExpandInterventions),
		query.WithSelectable(fieldNames...),
		query.WithCountable(countable...),
		query.WithMaxLimit(maxLimit),
	}
}

// CriteriaGuard validates the project search criteria.
func CriteriaGuard(c query.Criteria) guard.Outcome {
	outcomes := guard.CheckAll(
		guard.Argument{Name: CriterionStatus, Value: list(c, CriterionStatus), Checks: []guard.CheckKind{guard.NotEmptyArray, guard.OneOf}, Extra: statusExtra()},
		guard.Argument{Name: CriterionBorough, Value: list(c, CriterionBorough), Checks: []guard.CheckKind{guard.NotEmptyArray}},
		guard.Argument{Name: CriterionExecutor, Value: list(c, CriterionExecutor), Checks: []guard.CheckKind{guard.NotEmptyArray}},
		guard.Argument{Name: CriterionType, Value: list(c, CriterionType), Checks: []guard.CheckKind{guard.NotEmptyArray}},
		guard.Argument{Name: CriterionSearchText, Value: text(c), Checks: []guard.CheckKind{guard.NotEmptyString}},
	)
	return guard.Combine(append(outcomes, yearGuard(c))...)
}

func yearGuard(c query.Criteria) guard.Outcome {
	v, ok := c.Get(CriterionStartYear)
	if !ok {
		return guard.Succeed()
	}
	checks := []guard.CheckKind{guard.Integer, guard.InRange}
	extra := guard.Extra(minYear, maxYear)

	r, isRange := v.(query.Range)
	if !isRange {
		return guard.Check(guard.Argument{Name: CriterionStartYear, Value: v, Checks: checks, Extra: extra})
	}
	return guard.Combine(
		guard.Check(guard.Argument{Name: CriterionStartYear + ".from", Value: r.From, Checks: checks, Extra: extra}),
		guard.Check(guard.Argument{Name: CriterionStartYear + ".to", Value: r.To, Checks: checks, Extra: extra}),
	)
}

func list(c query.Criteria, key string) any {
	if !c.Has(key) {
		return nil
	}
	return c.List(key)
}

func text(c query.Criteria) any {
	v, ok := c.Get(CriterionSearchText)
	if !ok {
		return nil
	}
	return v
}

// defaultCriteria hides canceled projects from searches. Lookups by id see
// every status.
func defaultCriteria(c query.Criteria) {
	if !c.Has(CriterionStatus) && !c.Has(query.IDKey) {
		c[CriterionStatus] = slices.Clone(defaultStatuses)
	}
}

// SearchTaxonomy returns a validator checking the codes named by criteria.
func SearchTaxonomy(v *taxonomy.Validator) func(context.Context, query.Props) result.Result[result.Void] {
	return func(ctx context.Context, props query.Props) result.Result[result.Void] {
		c := props.Criteria
		return v.Check(ctx,
			taxonomy.Ref{Target: CriterionBorough, Group: taxonomy.GroupBorough, Value: c.List(CriterionBorough)},
			taxonomy.Ref{Target: CriterionExecutor, Group: taxonomy.GroupExecutor, Value: c.List(CriterionExecutor)},
			taxonomy.Ref{Target: CriterionType, Group: taxonomy.GroupProjectType, Value: c.List(CriterionType)},
		)
	}
}
