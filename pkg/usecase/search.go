package usecase

import (
	"context"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/async"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// Paginated is a page of mapped entities with its paging metadata.
type Paginated[O any] struct {
	Items  []O          `json:"items"`
	Paging query.Paging `json:"paging"`
}

type SearchConfig[E, O any] struct {
	Name         string
	Entity       string
	Searcher     Searcher[E]
	Mapper       Mapper[E, O]
	QueryOptions []query.Option
	Validators   []Validator[query.Props]
	Runtime      *Runtime
}

type Search[E, O any] struct {
	cfg SearchConfig[E, O]
	rt  *Runtime
}

func NewSearch[E, O any](cfg SearchConfig[E, O]) *Search[E, O] {
	if cfg.Searcher == nil || cfg.Mapper == nil {
		panic("usecase: search needs a searcher and a mapper")
	}
	return &Search[E, O]{cfg: cfg, rt: orDefault(cfg.Runtime)}
}

// Execute validates the props, then loads the page and the total count.
func (uc *Search[E, O]) Execute(ctx context.Context, props query.Props) Either[error, Paginated[O]] {
	return run(ctx, uc.rt, uc.cfg.Name, nil, func(ctx context.Context) (Paginated[O], error) {
		var zero Paginated[O]

		valid := validate(ctx, props, func() guard.Outcome {
			return query.GuardFindPaginated(props, uc.cfg.QueryOptions...)
		}, uc.cfg.Validators)
		if valid.IsFailure() {
			return zero, rejected(valid.Failures(), core.InvalidParameter)
		}
		opts, err := build(func() result.Result[*query.FindOptions] {
			return query.FindPaginated(props, uc.cfg.QueryOptions...)
		})
		if err != nil {
			return zero, err
		}

		total := async.Go(ctx, func(ctx context.Context) (int64, error) {
			return uc.cfg.Searcher.Count(ctx, opts)
		})
		entities, err := uc.cfg.Searcher.Find(ctx, opts)
		if err != nil {
			return zero, core.Unexpected("failed to search "+uc.cfg.Entity, err)
		}
		count, err := total.Await(ctx)
		if err != nil {
			return zero, core.Unexpected("failed to count "+uc.cfg.Entity, err)
		}

		items := make([]O, 0, len(entities))
		for _, e := range entities {
			out, err := uc.cfg.Mapper(ctx, e, opts)
			if err != nil {
				return zero, core.Unexpected("failed to map "+uc.cfg.Entity, err)
			}
			items = append(items, out)
		}
		return Paginated[O]{Items: items, Paging: query.NewPaging(opts, count)}, nil
	})
}
