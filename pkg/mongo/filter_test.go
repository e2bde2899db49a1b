package mongo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/mongo"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	criteria := query.Criteria{
		"id":        "P00001",
		"status":    "planned,programmed",
		"boroughId": []string{"VM"},
		"startYear": query.Range{From: 2021, To: 2023},
		"endYear":   query.Range{},
		"typeId":    nil,
		"executor":  "di",
	}
	fields := mongo.FieldMap{"boroughId": "location.boroughId"}

	got := mongo.Filter(criteria, fields, nil)
	want := bson.D{
		{Key: "location.boroughId", Value: bson.D{{Key: "$in", Value: bson.A{"VM"}}}},
		{Key: "executor", Value: "di"},
		{Key: "_id", Value: "P00001"},
		{Key: "startYear", Value: bson.D{{Key: "$gte", Value: 2021}, {Key: "$lte", Value: 2023}}},
		{Key: "status", Value: bson.D{{Key: "$in", Value: []string{"planned", "programmed"}}}},
	}
	assert.Equal(t, want, got)
}

func TestFilterCustomCriterion(t *testing.T) {
	t.Parallel()

	custom := func(key string, value any) (bson.E, bool) {
		switch key {
		case "q":
			return bson.E{Key: "name", Value: bson.D{{Key: "$regex", Value: value}, {Key: "$options", Value: "i"}}}, true
		case "ignored":
			return bson.E{}, true
		}
		return bson.E{}, false
	}

	got := mongo.Filter(query.Criteria{"q": "rue", "ignored": 1, "status": "planned"}, nil, custom)
	require.Len(t, got, 2)
	assert.Equal(t, "name", got[0].Key)
	assert.Equal(t, bson.E{Key: "status", Value: "planned"}, got[1])
}

func TestSortAndProjection(t *testing.T) {
	t.Parallel()

	fields := mongo.FieldMap{"boroughId": "location.boroughId"}
	orders := query.ParseOrderBy("-startYear,boroughId,id")

	assert.Equal(t, bson.D{
		{Key: "startYear", Value: -1},
		{Key: "location.boroughId", Value: 1},
		{Key: "_id", Value: 1},
	}, mongo.Sort(orders, fields))
	assert.Nil(t, mongo.Sort(nil, fields))

	assert.Equal(t, bson.D{
		{Key: "_id", Value: 1},
		{Key: "audit.createdAt", Value: 1},
	}, mongo.Projection([]string{"id", "audit.createdAt"}, fields))
	assert.Nil(t, mongo.Projection(nil, fields))
}

func TestCountByPipeline(t *testing.T) {
	t.Parallel()

	pipeline := mongo.CountByPipeline(bson.D{{Key: "status", Value: "planned"}}, "boroughId")
	require.Len(t, pipeline, 3)

	group := pipeline[1].(bson.D)[0].Value.(bson.D)
	assert.Equal(t, bson.E{Key: "_id", Value: "$boroughId"}, group[0])
}
