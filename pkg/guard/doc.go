// Package guard provides composable precondition checks that never panic and
// always report through an Outcome: either success or a list of core.Failure
// values carrying the target, an error code and a message.
//
// Two styles are available. Argument-driven checks describe one value and the
// ordered list of CheckKind to run against it; the first failing check stops
// the evaluation for that value so a single field never piles up redundant
// messages:
//
//	outcome := guard.Validate(
//	    guard.Argument{Name: "id", Value: id, Checks: []guard.CheckKind{guard.Required, guard.ValidUUID}},
//	    guard.Argument{Name: "limit", Value: limit, Checks: []guard.CheckKind{guard.ZeroOrPositiveInteger}},
//	)
//
// Rule-driven checks build Rule values directly and evaluate them with Apply,
// which is convenient for business rules spanning several fields:
//
//	outcome := guard.Apply(
//	    guard.NewRule("endYear", "endYear must not precede startYear", func() bool { return end >= start }),
//	)
//
// Outcomes merge with Combine, which de-duplicates failures by message and
// target, and convert to a result.Result with Outcome.Result.
//
// Absent values (nil or nil pointers) only fail Required; every other check
// treats absence as "not provided". Combine Required with the other checks to
// make a value mandatory.
package guard
