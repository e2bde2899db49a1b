package query

import (
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
)

// CriteriaGuard validates the domain-specific part of the criteria.
type CriteriaGuard func(Criteria) guard.Outcome

// Option configures how find options are guarded and built.
type Option func(*policy)

type policy struct {
	criteriaGuards []CriteriaGuard
	defaults       []func(Criteria)
	sortable       []string
	expandable     []string
	selectable     []string
	countable      []string
	defaultOrderBy string
	defaultLimit   int
	maxLimit       int
	idChecks       []guard.CheckKind
	idExtra        []any

	// set by FindPaginated
	paginated bool
}

func newPolicy(opts ...Option) *policy {
	p := &policy{
		defaultLimit: DefaultLimit,
		idChecks:     []guard.CheckKind{guard.NotEmptyString},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultLimit is the page size used by FindPaginated when none is configured.
const DefaultLimit = 10

// WithCriteriaGuard adds a domain criteria guard, combined with the base guard.
func WithCriteriaGuard(g CriteriaGuard) Option {
	return func(p *policy) {
		if g != nil {
			p.criteriaGuards = append(p.criteriaGuards, g)
		}
	}
}

// WithDefaultCriteria registers a hook filling in omitted criteria.
// Hooks run only once the props were validated.
func WithDefaultCriteria(fn func(Criteria)) Option {
	return func(p *policy) {
		if fn != nil {
			p.defaults = append(p.defaults, fn)
		}
	}
}

// WithDefaultOrderBy sets the sort applied when orderBy is omitted.
func WithDefaultOrderBy(orderBy string) Option {
	return func(p *policy) {
		p.defaultOrderBy = orderBy
	}
}

// WithSortable restricts orderBy to the given fields.
func WithSortable(fields ...string) Option {
	return func(p *policy) {
		p.sortable = append(p.sortable, fields...)
	}
}

// WithExpandable lists the relations expand may name. Without it expand is rejected.
func WithExpandable(relations ...string) Option {
	return func(p *policy) {
		p.expandable = append(p.expandable, relations...)
	}
}

// WithSelectable restricts fields to the given names.
func WithSelectable(fields ...string) Option {
	return func(p *policy) {
		p.selectable = append(p.selectable, fields...)
	}
}

// WithCountable lists the fields countBy may name. Without it countBy is rejected.
func WithCountable(fields ...string) Option {
	return func(p *policy) {
		p.countable = append(p.countable, fields...)
	}
}

// WithDefaultLimit sets the page size used by FindPaginated.
func WithDefaultLimit(limit int) Option {
	return func(p *policy) {
		if limit > 0 {
			p.defaultLimit = limit
		}
	}
}

// WithMaxLimit caps the accepted limit.
func WithMaxLimit(limit int) Option {
	return func(p *policy) {
		if limit > 0 {
			p.maxLimit = limit
		}
	}
}

// WithIDCheck sets the checks FindByID runs on the identifier.
func WithIDCheck(kind guard.CheckKind, extra ...any) Option {
	return func(p *policy) {
		p.idChecks = []guard.CheckKind{guard.NotEmptyString, kind}
		p.idExtra = extra
	}
}

func paginated() Option {
	return func(p *policy) {
		p.paginated = true
	}
}
