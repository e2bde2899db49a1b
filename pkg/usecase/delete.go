package usecase

import (
	"context"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

type DeleteCommand struct {
	ID string
}

type DeleteConfig[E any] struct {
	Name          string
	Entity        string
	Finder        Finder[E]
	Deleter       Deleter
	QueryOptions  []query.Option
	Validators    []Validator[DeleteCommand]
	Authorizers   []Authorizer[E]
	BusinessRules []BusinessRule[E]
	Runtime       *Runtime
}

type Delete[E any] struct {
	cfg DeleteConfig[E]
	rt  *Runtime
}

func NewDelete[E any](cfg DeleteConfig[E]) *Delete[E] {
	if cfg.Finder == nil || cfg.Deleter == nil {
		panic("usecase: delete needs a finder and a deleter")
	}
	return &Delete[E]{cfg: cfg, rt: orDefault(cfg.Runtime)}
}

// Execute fetches the entity, authorizes the caller against it, checks the
// business rules and deletes it.
func (uc *Delete[E]) Execute(ctx context.Context, cmd DeleteCommand) Either[error, result.Void] {
	return run(ctx, uc.rt, uc.cfg.Name, cmd.ID, func(ctx context.Context) (result.Void, error) {
		entity, _, err := fetch(ctx, cmd, cmd.ID, uc.cfg.Entity, uc.cfg.Finder,
			func() guard.Outcome { return query.GuardFindByID(cmd.ID, query.Props{}, uc.cfg.QueryOptions...) },
			func() result.Result[*query.FindOptions] { return query.FindByID(cmd.ID, query.Props{}, uc.cfg.QueryOptions...) },
			uc.cfg.Validators,
		)
		if err != nil {
			return result.Void{}, err
		}

		if o := checkAll(ctx, entity, uc.cfg.Authorizers); o.IsFailure() {
			return result.Void{}, core.Forbidden(o.Failures)
		}
		if o := checkAll(ctx, entity, uc.cfg.BusinessRules); o.IsFailure() {
			return result.Void{}, rejected(o.Failures, core.Unprocessable)
		}

		if err := uc.cfg.Deleter.Delete(ctx, cmd.ID); err != nil {
			return result.Void{}, core.Unexpected("failed to delete "+uc.cfg.Entity, err)
		}
		return result.Void{}, nil
	})
}
