package usecase

import (
	"context"
	"fmt"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/logger"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/statemachine"
)

// UpdateStatusCommand asks for the entity to move to Status. Options are
// handed to the transition.
type UpdateStatusCommand[S ~string] struct {
	ID      string
	Status  S
	Options statemachine.Options
	Expand  string
	Fields  string
}

type UpdateStatusConfig[E statemachine.Stateful[S], S ~string, O any] struct {
	Name         string
	Entity       string
	Finder       Finder[E]
	Saver        Saver[E]
	Machine      statemachine.Transitioner[E, S]
	Mapper       Mapper[E, O]
	Statuses     []S
	QueryOptions []query.Option
	Validators   []Validator[UpdateStatusCommand[S]]
	Authorizers  []Authorizer[E]
	Runtime      *Runtime
}

type UpdateStatus[E statemachine.Stateful[S], S ~string, O any] struct {
	cfg UpdateStatusConfig[E, S, O]
	rt  *Runtime
}

func NewUpdateStatus[E statemachine.Stateful[S], S ~string, O any](cfg UpdateStatusConfig[E, S, O]) *UpdateStatus[E, S, O] {
	if cfg.Finder == nil || cfg.Saver == nil || cfg.Machine == nil || cfg.Mapper == nil {
		panic("usecase: update status needs a finder, a saver, a state machine and a mapper")
	}
	return &UpdateStatus[E, S, O]{cfg: cfg, rt: orDefault(cfg.Runtime)}
}

// Execute fetches the entity, checks the caller may change it and that the
// transition is legal, runs it, saves and maps the result.
func (uc *UpdateStatus[E, S, O]) Execute(ctx context.Context, cmd UpdateStatusCommand[S]) Either[error, O] {
	return run(ctx, uc.rt, uc.cfg.Name, cmd.ID, func(ctx context.Context) (O, error) {
		var zero O

		view := query.Props{Expand: cmd.Expand, Fields: cmd.Fields}
		entity, _, err := fetch(ctx, cmd, cmd.ID, uc.cfg.Entity, uc.cfg.Finder,
			func() guard.Outcome {
				return guard.Combine(query.GuardFindByID(cmd.ID, view, uc.cfg.QueryOptions...), uc.statusGuard(cmd.Status))
			},
			// the whole entity is loaded since it is saved back
			func() result.Result[*query.FindOptions] { return query.FindByID(cmd.ID, query.Props{}, uc.cfg.QueryOptions...) },
			uc.cfg.Validators,
		)
		if err != nil {
			return zero, err
		}

		if o := checkAll(ctx, entity, uc.cfg.Authorizers); o.IsFailure() {
			return zero, core.Forbidden(o.Failures)
		}

		from := entity.Status()
		if !uc.cfg.Machine.IsStateTransitionPossible(from, cmd.Status) {
			return zero, core.Unprocessable(core.Failures{core.NewFailure(
				core.CodeInvalidStatusTransition,
				"status",
				fmt.Sprintf("invalid status transition from '%s' to '%s'", from, cmd.Status),
			)})
		}

		transited := uc.cfg.Machine.Transit(ctx, entity, cmd.Status, cmd.Options)
		if transited.IsFailure() {
			return zero, rejected(transited.Failures(), core.Unprocessable)
		}
		entity = transited.Value()

		if err := uc.cfg.Saver.Save(ctx, entity); err != nil {
			return zero, core.Unexpected("failed to save "+uc.cfg.Entity, err)
		}
		uc.rt.logger.InfoContext(ctx, "status updated",
			logger.UseCase(uc.cfg.Name),
			logger.EntityID(cmd.ID),
			logger.Transition(string(from), string(cmd.Status)),
		)

		opts, err := build(func() result.Result[*query.FindOptions] {
			return query.FindByID(cmd.ID, view, uc.cfg.QueryOptions...)
		})
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

func (uc *UpdateStatus[E, S, O]) statusGuard(status S) guard.Outcome {
	checks := []guard.CheckKind{guard.NotEmptyString}
	var extra []any
	if len(uc.cfg.Statuses) > 0 {
		checks = append(checks, guard.OneOf)
		for _, s := range uc.cfg.Statuses {
			extra = append(extra, string(s))
		}
	}
	return guard.Check(guard.Argument{Name: "status", Value: string(status), Checks: checks, Extra: extra})
}
