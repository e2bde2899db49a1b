package query

// Paging is the pagination metadata attached to a search result.
type Paging struct {
	Offset     int   `json:"offset"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
}

// NewPaging describes the page selected by opts within total matching items.
func NewPaging(opts *FindOptions, total int64) Paging {
	if opts == nil {
		return Paging{TotalCount: total}
	}
	return Paging{Offset: opts.Offset(), Limit: opts.Limit(), TotalCount: total}
}

// HasMore reports whether items remain after this page.
func (p Paging) HasMore() bool {
	if p.Limit == 0 {
		return false
	}
	return int64(p.Offset+p.Limit) < p.TotalCount
}

// CountBy is one bucket of a count-by aggregation.
type CountBy struct {
	Key   any   `json:"key" bson:"_id"`
	Count int64 `json:"count" bson:"count"`
}
