// Package result provides Result, an immutable success/failure container used
// instead of panics or sentinel values for every expected outcome of the
// planning core: invalid input, business-rule violations and rejected status
// transitions all travel as failed results.
//
// Results of different value types can be merged with Combine, which
// de-duplicates failures by message and target so that independent validation
// branches produce one unambiguous error payload.
//
//	idCheck := guard.Check(guard.Argument{Name: "id", Value: id, Checks: []guard.CheckKind{guard.Required, guard.ValidUUID}}).Result()
//	taxonomyCheck := validateTaxonomy(ctx, cmd)
//	if combined := result.Combine(idCheck, taxonomyCheck); combined.IsFailure() {
//	    return core.InvalidParameter(combined.Failures())
//	}
//
// Constructing a success with an error, a failure without one, or reading the
// value of a failure are programming errors and panic immediately.
package result
