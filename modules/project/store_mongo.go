package project

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/mongo"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

const (
	// CollectionName is the collection holding projects.
	CollectionName = "projects"
	countersName   = "counters"
)

type document struct {
	ID            string         `bson:"_id"`
	Name          string         `bson:"name"`
	Status        string         `bson:"status"`
	BoroughID     string         `bson:"boroughId"`
	ExecutorID    string         `bson:"executorId"`
	TypeID        string         `bson:"typeId"`
	StartYear     int            `bson:"startYear"`
	EndYear       int            `bson:"endYear"`
	Geometry      Geometry       `bson:"geometry"`
	Interventions []Intervention `bson:"interventions,omitempty"`
	History       []StatusChange `bson:"history,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt"`
}

func toDocument(p *Project) document {
	return document{
		ID:            p.ID,
		Name:          p.Name,
		Status:        string(p.status),
		BoroughID:     p.BoroughID,
		ExecutorID:    p.ExecutorID,
		TypeID:        p.TypeID,
		StartYear:     p.StartYear,
		EndYear:       p.EndYear,
		Geometry:      p.Geometry,
		Interventions: p.Interventions,
		History:       p.History,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func fromDocument(d document) (*Project, error) {
	return restore(Project{
		ID:            d.ID,
		Name:          d.Name,
		BoroughID:     d.BoroughID,
		ExecutorID:    d.ExecutorID,
		TypeID:        d.TypeID,
		StartYear:     d.StartYear,
		EndYear:       d.EndYear,
		Geometry:      d.Geometry,
		Interventions: d.Interventions,
		History:       d.History,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, Status(d.Status)), nil
}

// criterion handles the criteria the generic filter cannot: free text and
// years sent as strings.
func criterion(key string, value any) (bson.E, bool) {
	switch key {
	case CriterionSearchText:
		s, ok := value.(string)
		if !ok || s == "" {
			return bson.E{}, true
		}
		re := bson.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		return bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "_id", Value: re}},
		}}, true
	case CriterionStartYear:
		if r, ok := value.(query.Range); ok {
			return mongoYearRange(r)
		}
		if n, ok := toYear(value); ok {
			return bson.E{Key: CriterionStartYear, Value: n}, true
		}
	}
	return bson.E{}, false
}

func mongoYearRange(r query.Range) (bson.E, bool) {
	cond := bson.D{}
	if n, ok := toYear(r.From); ok {
		cond = append(cond, bson.E{Key: "$gte", Value: n})
	}
	if n, ok := toYear(r.To); ok {
		cond = append(cond, bson.E{Key: "$lte", Value: n})
	}
	if len(cond) == 0 {
		return bson.E{}, true
	}
	return bson.E{Key: CriterionStartYear, Value: cond}, true
}

// MongoStore persists projects in MongoDB.
type MongoStore struct {
	*mongo.Repository[*Project, document]
	counters *mongodriver.Collection
}

func NewMongoStore(db *mongodriver.Database) *MongoStore {
	return &MongoStore{
		Repository: mongo.NewRepository(db.Collection(CollectionName), mongo.Mapping[*Project, document]{
			ToDocument:   toDocument,
			FromDocument: fromDocument,
			ID:           func(p *Project) any { return p.ID },
			Criterion:    criterion,
		}),
		counters: db.Collection(countersName),
	}
}

// EnsureIndexes creates the indexes backing the search criteria.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection().Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "startYear", Value: -1}}},
		{Keys: bson.D{{Key: "boroughId", Value: 1}}},
		{Keys: bson.D{{Key: "executorId", Value: 1}}},
		{Keys: bson.D{{Key: "geometry", Value: "2dsphere"}}},
	})
	return err
}

// NextID increments the project sequence held in the counters collection.
func (s *MongoStore) NextID(ctx context.Context) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: CollectionName}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", err
	}
	return FormatID(counter.Seq), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	err := s.Repository.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}

var _ Store = (*MongoStore)(nil)
