package usecase

import (
	"context"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

type CountByConfig struct {
	Name         string
	Entity       string
	Counter      GroupCounter
	QueryOptions []query.Option
	Validators   []Validator[query.Props]
	Runtime      *Runtime
}

// CountBy counts matching entities per value of props.CountBy.
type CountBy struct {
	cfg CountByConfig
	rt  *Runtime
}

func NewCountBy(cfg CountByConfig) *CountBy {
	if cfg.Counter == nil {
		panic("usecase: count by needs a counter")
	}
	return &CountBy{cfg: cfg, rt: orDefault(cfg.Runtime)}
}

func (uc *CountBy) Execute(ctx context.Context, props query.Props) Either[error, []query.CountBy] {
	return run(ctx, uc.rt, uc.cfg.Name, nil, func(ctx context.Context) ([]query.CountBy, error) {
		valid := validate(ctx, props, func() guard.Outcome {
			return guard.Combine(
				guard.Check(guard.Argument{Name: "countBy", Value: props.CountBy, Checks: []guard.CheckKind{guard.NotEmptyString}}),
				query.Guard(props, uc.cfg.QueryOptions...),
			)
		}, uc.cfg.Validators)
		if valid.IsFailure() {
			return nil, rejected(valid.Failures(), core.InvalidParameter)
		}
		opts, err := build(func() result.Result[*query.FindOptions] {
			return query.Create(props, uc.cfg.QueryOptions...)
		})
		if err != nil {
			return nil, err
		}

		counts, err := uc.cfg.Counter.CountBy(ctx, opts)
		if err != nil {
			return nil, core.Unexpected("failed to count "+uc.cfg.Entity, err)
		}
		if counts == nil {
			counts = []query.CountBy{}
		}
		return counts, nil
	})
}
