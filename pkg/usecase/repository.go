package usecase

import (
	"context"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

// Finder fetches the first entity matching the options. found is false when
// nothing matched; err is reserved for infrastructure problems.
type Finder[E any] interface {
	FindOne(ctx context.Context, opts *query.FindOptions) (entity E, found bool, err error)
}

// Searcher lists a page of entities and counts every match.
type Searcher[E any] interface {
	Find(ctx context.Context, opts *query.FindOptions) ([]E, error)
	Count(ctx context.Context, opts *query.FindOptions) (int64, error)
}

// GroupCounter counts matching entities grouped by the options' countBy field.
type GroupCounter interface {
	CountBy(ctx context.Context, opts *query.FindOptions) ([]query.CountBy, error)
}

type Deleter interface {
	Delete(ctx context.Context, id string) error
}

type Saver[E any] interface {
	Save(ctx context.Context, entity E) error
}

// Mapper turns an entity into its output shape, honoring the requested
// fields and expansions.
type Mapper[E, O any] func(ctx context.Context, entity E, opts *query.FindOptions) (O, error)
