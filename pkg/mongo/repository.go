package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

// Mapping describes how an entity E is stored as a document D.
type Mapping[E any, D any] struct {
	ToDocument   func(E) D
	FromDocument func(D) (E, error)
	ID           func(E) any
	Fields       FieldMap
	Criterion    CriterionFunc
}

// Repository executes validated find options against one collection.
type Repository[E any, D any] struct {
	coll    *mongo.Collection
	mapping Mapping[E, D]
}

// NewRepository panics when the mapping misses a conversion function.
func NewRepository[E any, D any](coll *mongo.Collection, mapping Mapping[E, D]) *Repository[E, D] {
	if coll == nil {
		panic("mongo: collection cannot be nil")
	}
	if mapping.ToDocument == nil || mapping.FromDocument == nil || mapping.ID == nil {
		panic("mongo: mapping needs ToDocument, FromDocument and ID")
	}
	return &Repository[E, D]{coll: coll, mapping: mapping}
}

// Collection exposes the underlying collection, e.g. to manage indexes.
func (r *Repository[E, D]) Collection() *mongo.Collection {
	return r.coll
}

func (r *Repository[E, D]) filter(opts *query.FindOptions) bson.D {
	return Filter(opts.Criteria(), r.mapping.Fields, r.mapping.Criterion)
}

// FindOne returns the first matching entity. found is false when nothing matched.
func (r *Repository[E, D]) FindOne(ctx context.Context, opts *query.FindOptions) (entity E, found bool, err error) {
	findOpts := options.FindOne().SetSkip(int64(opts.Offset()))
	if sort := Sort(opts.OrderBy(), r.mapping.Fields); sort != nil {
		findOpts.SetSort(sort)
	}
	if proj := Projection(opts.Fields(), r.mapping.Fields); proj != nil {
		findOpts.SetProjection(proj)
	}

	var doc D
	if err := r.coll.FindOne(ctx, r.filter(opts), findOpts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity, false, nil
		}
		return entity, false, err
	}

	entity, err = r.mapping.FromDocument(doc)
	if err != nil {
		return entity, false, errors.Join(ErrDecode, err)
	}
	return entity, true, nil
}

// Find returns the page of entities selected by opts.
func (r *Repository[E, D]) Find(ctx context.Context, opts *query.FindOptions) ([]E, error) {
	findOpts := options.Find().SetSkip(int64(opts.Offset()))
	if opts.Limit() > 0 {
		findOpts.SetLimit(int64(opts.Limit()))
	}
	if sort := Sort(opts.OrderBy(), r.mapping.Fields); sort != nil {
		findOpts.SetSort(sort)
	}
	if proj := Projection(opts.Fields(), r.mapping.Fields); proj != nil {
		findOpts.SetProjection(proj)
	}

	cursor, err := r.coll.Find(ctx, r.filter(opts), findOpts)
	if err != nil {
		return nil, err
	}

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entities := make([]E, 0, len(docs))
	for _, doc := range docs {
		e, err := r.mapping.FromDocument(doc)
		if err != nil {
			return nil, errors.Join(ErrDecode, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// Count counts every entity matching the criteria, ignoring pagination.
func (r *Repository[E, D]) Count(ctx context.Context, opts *query.FindOptions) (int64, error) {
	return r.coll.CountDocuments(ctx, r.filter(opts))
}

// CountBy groups the matching entities by the options' countBy field.
func (r *Repository[E, D]) CountBy(ctx context.Context, opts *query.FindOptions) ([]query.CountBy, error) {
	field := r.mapping.Fields.field(opts.CountBy())
	cursor, err := r.coll.Aggregate(ctx, CountByPipeline(r.filter(opts), field))
	if err != nil {
		return nil, err
	}

	var buckets []query.CountBy
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// Save inserts or replaces the entity's document.
func (r *Repository[E, D]) Save(ctx context.Context, entity E) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: r.mapping.ID(entity)}},
		r.mapping.ToDocument(entity),
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes the document with the given id. ErrNotFound reports that
// nothing was deleted.
func (r *Repository[E, D]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
