package mongo

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

// FieldMap renames criteria, sort and projection fields to document fields.
// Unmapped names are used as is; "id" always maps to "_id".
type FieldMap map[string]string

func (m FieldMap) field(name string) string {
	if f, ok := m[name]; ok {
		return f
	}
	if name == query.IDKey {
		return "_id"
	}
	return name
}

// CriterionFunc translates one criterion itself. Returning false falls back
// to the generic translation.
type CriterionFunc func(key string, value any) (bson.E, bool)

// Filter translates criteria into a filter document. Keys are processed in
// sorted order so the result is deterministic:
//
//   - query.Range becomes {$gte, $lte} on the present bounds
//   - slices and comma-separated strings with several items become $in
//   - anything else is an equality match
func Filter(criteria query.Criteria, fields FieldMap, custom CriterionFunc) bson.D {
	filter := bson.D{}
	for _, key := range slices.Sorted(maps.Keys(criteria)) {
		value, ok := criteria.Get(key)
		if !ok {
			continue
		}
		if custom != nil {
			if e, handled := custom(key, value); handled {
				if e.Key != "" {
					filter = append(filter, e)
				}
				continue
			}
		}
		if e, ok := criterion(fields.field(key), value); ok {
			filter = append(filter, e)
		}
	}
	return filter
}

func criterion(field string, value any) (bson.E, bool) {
	switch v := value.(type) {
	case query.Range:
		if v.IsOpen() {
			return bson.E{}, false
		}
		cond := bson.D{}
		if v.From != nil {
			cond = append(cond, bson.E{Key: "$gte", Value: v.From})
		}
		if v.To != nil {
			cond = append(cond, bson.E{Key: "$lte", Value: v.To})
		}
		return bson.E{Key: field, Value: cond}, true
	case string:
		items := query.Split(v)
		switch len(items) {
		case 0:
			return bson.E{}, false
		case 1:
			return bson.E{Key: field, Value: items[0]}, true
		}
		return bson.E{Key: field, Value: bson.D{{Key: "$in", Value: items}}}, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		in := make(bson.A, 0, rv.Len())
		for i := range rv.Len() {
			in = append(in, rv.Index(i).Interface())
		}
		return bson.E{Key: field, Value: bson.D{{Key: "$in", Value: in}}}, true
	}
	return bson.E{Key: field, Value: value}, true
}

// Sort translates sort keys; nil when there are none.
func Sort(orderBy []query.Order, fields FieldMap) bson.D {
	if len(orderBy) == 0 {
		return nil
	}
	sort := make(bson.D, 0, len(orderBy))
	for _, o := range orderBy {
		dir := 1
		if o.Direction == query.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: fields.field(o.Field), Value: dir})
	}
	return sort
}

// Projection includes the selected fields; nil selects the whole document.
// Dotted names keep their path after the first segment is mapped.
func Projection(selected []string, fields FieldMap) bson.D {
	if len(selected) == 0 {
		return nil
	}
	proj := make(bson.D, 0, len(selected))
	for _, name := range selected {
		head, rest, nested := strings.Cut(name, ".")
		field := fields.field(head)
		if nested {
			field += "." + rest
		}
		proj = append(proj, bson.E{Key: field, Value: 1})
	}
	return proj
}

// CountByPipeline groups the matching documents by field and counts them,
// biggest groups first.
func CountByPipeline(filter bson.D, field string) bson.A {
	return bson.A{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}
