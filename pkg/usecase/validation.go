package usecase

import (
	"context"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/async"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// Validator is an extra check on a command, such as a taxonomy lookup. It
// runs concurrently with the command's own guard.
type Validator[C any] func(ctx context.Context, cmd C) result.Result[result.Void]

// Authorizer checks that the caller may act on the fetched entity.
type Authorizer[E any] func(ctx context.Context, entity E) guard.Outcome

// BusinessRule checks the fetched entity before it is changed.
type BusinessRule[E any] func(ctx context.Context, entity E) guard.Outcome

// RequirePermission adapts a boolean capability check into an Authorizer
// that fails with a Forbidden failure carrying message.
func RequirePermission[E any](allowed func(ctx context.Context) bool, message string) Authorizer[E] {
	return func(ctx context.Context, _ E) guard.Outcome {
		return guard.When(allowed(ctx), guard.Forbidden("permission", message))
	}
}

func checkAll[E any, F ~func(context.Context, E) guard.Outcome](ctx context.Context, entity E, fns []F) guard.Outcome {
	outcomes := make([]guard.Outcome, 0, len(fns))
	for _, fn := range fns {
		outcomes = append(outcomes, fn(ctx, entity))
	}
	return guard.Combine(outcomes...)
}

// validate runs the command guard and the validators side by side. Each
// check reports through its own future only, so a cancelled ctx never
// leaves a check writing shared state.
func validate[C any](
	ctx context.Context,
	cmd C,
	check func() guard.Outcome,
	validators []Validator[C],
) result.Result[result.Void] {
	checks := make([]async.Check, 0, len(validators)+1)
	checks = append(checks, func(context.Context) result.Result[result.Void] {
		return check().Result()
	})
	for _, v := range validators {
		if v == nil {
			continue
		}
		checks = append(checks, func(ctx context.Context) result.Result[result.Void] {
			return v(ctx, cmd)
		})
	}
	return async.Validate(ctx, checks...)
}

// build turns validated input into find options. Failing here means the
// guard and the builder disagree, which is a defect rather than bad input.
func build(fn func() result.Result[*query.FindOptions]) (*query.FindOptions, error) {
	built := fn()
	if built.IsFailure() {
		return nil, core.Unexpected("failed to build find options", built.Err())
	}
	return built.Value(), nil
}
