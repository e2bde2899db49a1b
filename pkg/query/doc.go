// Package query turns raw find requests into validated FindOptions.
//
// A request arrives as Props: free-form criteria plus offset, limit, orderBy,
// expand, fields and countBy, usually straight from a query string. Guard
// checks the generic parts and every domain CriteriaGuard registered with
// WithCriteriaGuard, combining all failures. Create guards, then builds the
// options; a FindOptions value therefore never exists in a partially valid
// state.
//
//	opts := []query.Option{
//	    query.WithCriteriaGuard(guardProjectCriteria),
//	    query.WithSortable("name", "startYear", "createdAt"),
//	    query.WithExpandable("interventions"),
//	    query.WithDefaultCriteria(func(c query.Criteria) {
//	        if !c.Has("status") {
//	            c["status"] = defaultStatuses
//	        }
//	    }),
//	}
//	res := query.FindPaginated(props, opts...)
//
// Derived shapes cover the common cases: FindOne forces limit 1 and offset 0,
// FindPaginated requires a positive limit and fills in defaults, FindByID and
// FindByUUID add a format-checked id criterion.
//
// Parsing happens after validation: orderBy becomes ordered Order values
// ("-createdAt" sorts descending), expand and fields become sorted sets and
// numeric strings become integers. Default criteria hooks run last.
package query
