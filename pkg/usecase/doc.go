// Package usecase provides the generic use-case template the domain modules
// are assembled from: GetByID, Search, CountBy, Delete and UpdateStatus.
//
// Every use case follows the same steps. The command guard and the injected
// validators run concurrently and are combined; failures become a
// core.InvalidParameter error. The find options are built from the validated
// command, the entity is fetched and its absence reported as core.NotFound.
// Mutating use cases then run the authorizers (core.Forbidden) and business
// rules or the state machine (core.Unprocessable) before persisting. The
// entity is finally mapped with the injected Mapper.
//
// Use cases answer with an Either: Left holds the error, Right the output.
//
//	get := usecase.NewGetByID(usecase.GetByIDConfig[*Project, ProjectView]{
//	    Name:         "project.get",
//	    Entity:       "project",
//	    Finder:       store,
//	    Mapper:       toView,
//	    QueryOptions: []query.Option{query.WithIDCheck(guard.MatchesPattern, idPattern)},
//	    Runtime:      usecase.NewRuntime(usecase.WithLogger(log), usecase.WithMetrics(metrics)),
//	})
//	view, err := get.Execute(ctx, usecase.GetByIDCommand{ID: "P00001"}).Unwrap()
//
// Each execution opens an OpenTelemetry span, is counted and timed by
// Metrics, and is logged: rejections at Warn, unexpected errors at Error and
// successes at Debug.
package usecase
