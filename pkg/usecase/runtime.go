package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/logger"
)

const tracerName = "github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"

// OutcomeSuccess labels successful executions in logs and metrics.
const OutcomeSuccess = "success"

// Runtime carries what every use case reports to: a logger, metrics and a tracer.
type Runtime struct {
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// Option configures a Runtime.
type Option func(*Runtime)

func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Runtime) {
		r.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runtime) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewRuntime defaults to slog.Default, no metrics and the global tracer.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func orDefault(r *Runtime) *Runtime {
	if r == nil {
		return NewRuntime()
	}
	return r
}

// run executes fn inside a span, then logs and records its outcome.
func run[O any](ctx context.Context, rt *Runtime, name string, id any, fn func(context.Context) (O, error)) Either[error, O] {
	ctx, span := rt.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("use_case", name)))
	defer span.End()

	start := rt.now()
	out, err := fn(ctx)
	elapsed := rt.now().Sub(start)

	outcome := outcomeOf(err)
	rt.metrics.Observe(name, outcome, elapsed)
	span.SetAttributes(attribute.String("outcome", outcome))

	attrs := []slog.Attr{logger.UseCase(name), logger.EntityID(id), logger.Outcome(outcome), logger.Duration(elapsed)}
	switch {
	case err == nil:
		rt.logger.LogAttrs(ctx, slog.LevelDebug, "use case succeeded", attrs...)
		return Right[error](out)
	case core.KindOf(err) == core.KindUnexpected:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		rt.logger.LogAttrs(ctx, slog.LevelError, "use case failed", append(attrs, logger.Error(err))...)
	default:
		rt.logger.LogAttrs(ctx, slog.LevelWarn, "use case rejected", append(attrs, failuresAttr(err))...)
	}
	return Left[error, O](err)
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	return snake(string(core.KindOf(err)))
}

func failuresAttr(err error) slog.Attr {
	var e *core.Error
	if errors.As(err, &e) && len(e.Failures) > 0 {
		return logger.Failures(e.Failures)
	}
	return logger.Error(err)
}

// snake turns "invalidParameter" into "invalid_parameter".
func snake(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// rejected picks the error for guard failures: an unexpected failure means a
// collaborator broke, anything else is the caller's fault.
func rejected(failures core.Failures, kind func(core.Failures) *core.Error) error {
	if failures.HasCode(core.CodeUnexpected) {
		return core.Unexpected("validation could not complete", failures)
	}
	return kind(failures)
}
