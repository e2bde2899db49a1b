package query

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is one sort key.
type Order struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Props is the raw, unvalidated input of a find request. Offset and Limit
// accept integers or numeric strings so query-string values pass through
// untouched.
type Props struct {
	Criteria Criteria
	Offset   any
	Limit    any
	OrderBy  string
	Expand   string
	Fields   string
	CountBy  string
}

// FindOptions is a validated find request. It only exists once its props
// passed every guard.
type FindOptions struct {
	criteria Criteria
	offset   int
	limit    int
	orderBy  []Order
	expand   []string
	fields   []string
	countBy  string
}

// Guard validates props: offset and limit, orderBy syntax, whitelisted expand,
// fields and countBy, then every registered criteria guard.
func Guard(props Props, opts ...Option) guard.Outcome {
	p := newPolicy(opts...)
	return p.guard(p.prepare(props))
}

// Create guards props and builds the find options. Default hooks run only
// after a successful guard.
func Create(props Props, opts ...Option) result.Result[*FindOptions] {
	return newPolicy(opts...).create(props)
}

// FindOne builds options for a single entity: limit 1, offset 0.
func FindOne(props Props, opts ...Option) result.Result[*FindOptions] {
	props.Offset, props.Limit = 0, 1
	return Create(props, opts...)
}

// FindPaginated builds options for a page. Offset defaults to 0 and limit to
// the configured default limit; the limit must be positive.
func FindPaginated(props Props, opts ...Option) result.Result[*FindOptions] {
	return Create(props, append(opts, paginated())...)
}

// GuardFindPaginated runs the guards of FindPaginated without building.
func GuardFindPaginated(props Props, opts ...Option) guard.Outcome {
	return Guard(props, append(opts, paginated())...)
}

// FindByID builds single-entity options filtered on id. The id is checked
// with the checks configured by WithIDCheck.
func FindByID(id any, props Props, opts ...Option) result.Result[*FindOptions] {
	p := newPolicy(opts...)
	return p.create(p.byID(id, p.configuredIDChecks(), p.idExtra, props))
}

// GuardFindByID runs the guards of FindByID without building.
func GuardFindByID(id any, props Props, opts ...Option) guard.Outcome {
	p := newPolicy(opts...)
	return p.guard(p.byID(id, p.configuredIDChecks(), p.idExtra, props))
}

// FindByUUID is FindByID with the id checked as a UUID.
func FindByUUID(id any, props Props, opts ...Option) result.Result[*FindOptions] {
	p := newPolicy(opts...)
	return p.create(p.byID(id, uuidChecks, nil, props))
}

// GuardFindByUUID runs the guards of FindByUUID without building.
func GuardFindByUUID(id any, props Props, opts ...Option) guard.Outcome {
	p := newPolicy(opts...)
	return p.guard(p.byID(id, uuidChecks, nil, props))
}

var uuidChecks = []guard.CheckKind{guard.Required, guard.ValidUUID}

func (p *policy) configuredIDChecks() []guard.CheckKind {
	return append([]guard.CheckKind{guard.Required}, p.idChecks...)
}

// byID registers the id check ahead of the criteria guards and returns props
// narrowed to that id.
func (p *policy) byID(id any, checks []guard.CheckKind, extra []any, props Props) Props {
	idOutcome := guard.Check(guard.Argument{Name: IDKey, Value: id, Checks: checks, Extra: extra})
	p.criteriaGuards = append([]CriteriaGuard{func(Criteria) guard.Outcome { return idOutcome }}, p.criteriaGuards...)

	props.Criteria = props.Criteria.Clone()
	props.Criteria[IDKey] = id
	props.Offset, props.Limit = 0, 1
	return props
}

func (p *policy) guard(props Props) guard.Outcome {
	offsetChecks := []guard.CheckKind{guard.ZeroOrPositiveInteger}
	limitChecks := []guard.CheckKind{guard.ZeroOrPositiveInteger}
	if p.paginated {
		limitChecks = []guard.CheckKind{guard.PositiveInteger}
	}
	var limitExtra []any
	if p.maxLimit > 0 {
		limitChecks = append(limitChecks, guard.InRange)
		limitExtra = guard.Extra(0, p.maxLimit)
	}

	outcomes := guard.CheckAll(
		guard.Argument{Name: "offset", Value: props.Offset, Checks: offsetChecks},
		guard.Argument{Name: "limit", Value: props.Limit, Checks: limitChecks, Extra: limitExtra},
		guard.Argument{
			Name:   "orderBy",
			Value:  optional(props.OrderBy),
			Checks: []guard.CheckKind{guard.OrderByList},
			Extra:  guard.Extra(p.sortable...),
		},
		guard.Argument{
			Name:   "fields",
			Value:  optional(props.Fields),
			Checks: []guard.CheckKind{guard.CommaSeparated},
			Extra:  guard.Extra(p.selectable...),
		},
	)
	outcomes = append(outcomes,
		whitelisted("expand", props.Expand, guard.CommaSeparated, p.expandable),
		whitelisted("countBy", props.CountBy, guard.OneOf, p.countable),
	)
	for _, g := range p.criteriaGuards {
		outcomes = append(outcomes, g(props.Criteria))
	}
	return guard.Combine(outcomes...)
}

// whitelisted rejects any value when the whitelist is empty.
func whitelisted(name, value string, kind guard.CheckKind, allowed []string) guard.Outcome {
	if strings.TrimSpace(value) == "" {
		return guard.Succeed()
	}
	if len(allowed) == 0 {
		return guard.Fail(guard.InvalidInput(name, fmt.Sprintf("%s is not supported", name)))
	}
	return guard.Check(guard.Argument{
		Name:   name,
		Value:  strings.TrimSpace(value),
		Checks: []guard.CheckKind{kind},
		Extra:  guard.Extra(allowed...),
	})
}

// prepare fills the paginated defaults.
func (p *policy) prepare(props Props) Props {
	if p.paginated {
		if props.Offset == nil {
			props.Offset = 0
		}
		if props.Limit == nil {
			props.Limit = p.defaultLimit
		}
	}
	return props
}

func (p *policy) create(props Props) result.Result[*FindOptions] {
	props = p.prepare(props)
	if outcome := p.guard(props); !outcome.Succeeded {
		return result.Fail[*FindOptions](outcome.Failures)
	}

	offset, _ := toInt(props.Offset)
	limit, _ := toInt(props.Limit)

	criteria := props.Criteria.Clone()
	for _, fn := range p.defaults {
		fn(criteria)
	}

	orderBy := props.OrderBy
	if strings.TrimSpace(orderBy) == "" {
		orderBy = p.defaultOrderBy
	}

	return result.Ok(&FindOptions{
		criteria: criteria,
		offset:   offset,
		limit:    limit,
		orderBy:  ParseOrderBy(orderBy),
		expand:   toSet(props.Expand),
		fields:   toSet(props.Fields),
		countBy:  strings.TrimSpace(props.CountBy),
	})
}

// ParseOrderBy splits "a,-b" into ordered sort keys; a leading '-' sorts descending.
func ParseOrderBy(orderBy string) []Order {
	items := Split(orderBy)
	if len(items) == 0 {
		return nil
	}
	out := make([]Order, 0, len(items))
	for _, item := range items {
		if field, ok := strings.CutPrefix(item, "-"); ok {
			out = append(out, Order{Field: field, Direction: Desc})
			continue
		}
		out = append(out, Order{Field: item, Direction: Asc})
	}
	return out
}

// Criteria returns the filter, including injected defaults.
func (o *FindOptions) Criteria() Criteria { return o.criteria }

func (o *FindOptions) Offset() int { return o.offset }

// Limit returns the page size; 0 means unbounded.
func (o *FindOptions) Limit() int { return o.limit }

func (o *FindOptions) OrderBy() []Order { return slices.Clone(o.orderBy) }

func (o *FindOptions) Expand() []string { return slices.Clone(o.expand) }

func (o *FindOptions) Fields() []string { return slices.Clone(o.fields) }

func (o *FindOptions) CountBy() string { return o.countBy }

// ID returns the id criterion, if any.
func (o *FindOptions) ID() (any, bool) { return o.criteria.ID() }

// HasExpand reports whether the relation was requested.
func (o *FindOptions) HasExpand(relation string) bool {
	return slices.Contains(o.expand, relation)
}

// Selects reports whether field belongs to the projection. An empty
// projection selects everything.
func (o *FindOptions) Selects(field string) bool {
	return len(o.fields) == 0 || slices.Contains(o.fields, field)
}

func optional(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func toSet(s string) []string {
	items := Split(s)
	if len(items) == 0 {
		return nil
	}
	slices.Sort(items)
	return slices.Compact(items)
}

func toInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return int(rv.Float()), true
	case reflect.String:
		return toInt(rv.String())
	}
	return 0, false
}
