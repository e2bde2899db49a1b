// Package logger builds *slog.Logger values from functional options and
// provides the attribute helpers used across the planning services.
//
// New picks a JSON or text handler, applies static attributes and wraps the
// handler with LogHandlerDecorator, which pulls extra attributes out of the
// context of every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "planning"),
//	    logger.WithLevelName(cfg.LogLevel),
//	)
//
//	ctx = logger.WithContext(ctx, logger.UseCase("project.get"), logger.EntityID(id))
//	log.WarnContext(ctx, "invalid parameter", logger.Failures(fs))
//
// Helpers such as Error, Failures and EntityID return an empty Attr for empty
// input, so callers never need a nil check.
package logger
