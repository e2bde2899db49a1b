package usecase

import (
	"context"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// GetByIDCommand asks for one entity.
type GetByIDCommand struct {
	ID     string
	Expand string
	Fields string
}

// GetByIDConfig wires a GetByID use case. Entity names the resource in
// NotFound messages.
type GetByIDConfig[E, O any] struct {
	Name         string
	Entity       string
	Finder       Finder[E]
	Mapper       Mapper[E, O]
	QueryOptions []query.Option
	Validators   []Validator[GetByIDCommand]
	Runtime      *Runtime
}

type GetByID[E, O any] struct {
	cfg GetByIDConfig[E, O]
	rt  *Runtime
}

func NewGetByID[E, O any](cfg GetByIDConfig[E, O]) *GetByID[E, O] {
	if cfg.Finder == nil || cfg.Mapper == nil {
		panic("usecase: get by id needs a finder and a mapper")
	}
	return &GetByID[E, O]{cfg: cfg, rt: orDefault(cfg.Runtime)}
}

// Execute validates the command, fetches the entity and maps it.
func (uc *GetByID[E, O]) Execute(ctx context.Context, cmd GetByIDCommand) Either[error, O] {
	return run(ctx, uc.rt, uc.cfg.Name, cmd.ID, func(ctx context.Context) (O, error) {
		var zero O

		props := query.Props{Expand: cmd.Expand, Fields: cmd.Fields}
		entity, opts, err := fetch(ctx, cmd, cmd.ID, uc.cfg.Entity, uc.cfg.Finder,
			func() guard.Outcome { return query.GuardFindByID(cmd.ID, props, uc.cfg.QueryOptions...) },
			func() result.Result[*query.FindOptions] { return query.FindByID(cmd.ID, props, uc.cfg.QueryOptions...) },
			uc.cfg.Validators,
		)
		if err != nil {
			return zero, err
		}

		out, err := uc.cfg.Mapper(ctx, entity, opts)
		if err != nil {
			return zero, core.Unexpected("failed to map "+uc.cfg.Entity, err)
		}
		return out, nil
	})
}

// fetch runs the first steps shared by every single-entity use case:
// validate, build the options, fetch, and report absence as NotFound.
func fetch[C, E any](
	ctx context.Context,
	cmd C,
	id string,
	entityName string,
	finder Finder[E],
	check func() guard.Outcome,
	buildFn func() result.Result[*query.FindOptions],
	validators []Validator[C],
) (E, *query.FindOptions, error) {
	var zero E

	if valid := validate(ctx, cmd, check, validators); valid.IsFailure() {
		return zero, nil, rejected(valid.Failures(), core.InvalidParameter)
	}
	opts, err := build(buildFn)
	if err != nil {
		return zero, nil, err
	}

	entity, found, err := finder.FindOne(ctx, opts)
	if err != nil {
		return zero, nil, core.Unexpected("failed to fetch "+entityName, err)
	}
	if !found {
		return zero, nil, core.NotFound("%s with id '%s' not found", entityName, id)
	}
	return entity, opts, nil
}
