// Package async runs independent computations concurrently and joins them.
//
// Go starts a function in its own goroutine and returns a *Future; Await
// blocks until the value is ready or the context is done. WaitAll joins a
// group of futures, collecting every error.
//
// Validate is the helper use cases rely on: it runs validation branches
// (input guards, taxonomy lookups, business rules) side by side and merges
// their failures with result.Combine, so the order in which branches finish
// never changes the outcome.
//
//	res := async.Validate(ctx,
//	    func(context.Context) result.Result[result.Void] { return cmd.Guard().Result() },
//	    func(ctx context.Context) result.Result[result.Void] { return taxonomy.Check(ctx, refs...) },
//	)
//
// A panicking branch is recovered and reported as an unexpected failure.
package async
