package query

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// IDKey is the criteria key holding the identifier filter.
const IDKey = "id"

// Criteria maps a filterable field to its value: a scalar, a slice or a Range.
type Criteria map[string]any

// Range is an inclusive filter interval; a nil bound is open.
type Range struct {
	From any `json:"from,omitempty" bson:"from,omitempty"`
	To   any `json:"to,omitempty" bson:"to,omitempty"`
}

// IsOpen reports whether both bounds are missing.
func (r Range) IsOpen() bool {
	return r.From == nil && r.To == nil
}

// ID returns the id criterion, if any.
func (c Criteria) ID() (any, bool) {
	return c.Get(IDKey)
}

// Get returns a present, non-nil criterion.
func (c Criteria) Get(key string) (any, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether a non-nil criterion is set.
func (c Criteria) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Clone returns a shallow copy; a nil criteria clones to an empty one.
func (c Criteria) Clone() Criteria {
	out := make(Criteria, len(c))
	maps.Copy(out, c)
	return out
}

// List normalizes a criterion into its string values. Comma-separated strings
// are split, slices are flattened and scalars become a one-element list.
func (c Criteria) List(key string) []string {
	v, ok := c.Get(key)
	if !ok {
		return nil
	}
	return toStrings(v)
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return Split(t)
	case []string:
		return t
	case fmt.Stringer:
		return []string{t.String()}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			out = append(out, fmt.Sprint(rv.Index(i).Interface()))
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

// Split splits a comma-separated list, trimming items and dropping empty ones.
func Split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
