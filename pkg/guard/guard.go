package guard

import (
	"fmt"
	"reflect"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// CheckKind names one atomic precondition.
type CheckKind string

const (
	Required              CheckKind = "required"
	Absent                CheckKind = "absent"
	NotEmptyString        CheckKind = "notEmptyString"
	ValidUUID             CheckKind = "validUUID"
	ValidObjectID         CheckKind = "validObjectID"
	MatchesPattern        CheckKind = "matchesPattern" // Extra[0]: *regexp.Regexp or pattern string
	OneOf                 CheckKind = "oneOf"          // Extra: allowed values
	Positive              CheckKind = "positive"
	ZeroOrPositive        CheckKind = "zeroOrPositive"
	Integer               CheckKind = "integer"
	PositiveInteger       CheckKind = "positiveInteger"
	ZeroOrPositiveInteger CheckKind = "zeroOrPositiveInteger"
	NonZero               CheckKind = "nonZero"
	InRange               CheckKind = "inRange" // Extra[0]: min, Extra[1]: max
	IsArray               CheckKind = "isArray"
	NotEmptyArray         CheckKind = "notEmptyArray"
	CommaSeparated        CheckKind = "commaSeparated" // Extra: allowed items, optional
	OrderByList           CheckKind = "orderByList"    // Extra: sortable fields, optional
	ValidGeometry         CheckKind = "validGeometry"
	ValidDate             CheckKind = "validDate"
	IsBoolean             CheckKind = "isBoolean"
	MaxFileSize           CheckKind = "maxFileSize" // Extra[0]: limit in bytes
)

// Argument describes one value to validate and the checks to run against it.
type Argument struct {
	Value  any
	Name   string
	Checks []CheckKind
	Extra  []any
}

// Outcome is the result of running guards: success or the list of failures.
type Outcome struct {
	Succeeded bool
	Failures  core.Failures
}

// Check runs every check listed on the argument, in order. The first failing
// check stops the evaluation of that argument.
//
// An absent value (nil or nil pointer) only fails Required; the other checks
// treat absence as "not provided" and pass.
func Check(arg Argument) Outcome {
	absent := isAbsent(arg.Value)
	for _, kind := range arg.Checks {
		if absent && kind != Required && kind != Absent {
			continue
		}
		rule := ruleFor(kind, arg)
		if !rule.Check() {
			return Fail(rule.Failure)
		}
	}
	return Succeed()
}

// CheckAll runs Check over independent arguments; one failing argument never
// prevents the others from being checked.
func CheckAll(args ...Argument) []Outcome {
	outcomes := make([]Outcome, 0, len(args))
	for _, arg := range args {
		outcomes = append(outcomes, Check(arg))
	}
	return outcomes
}

// Combine merges outcomes into one, de-duplicating failures by message and target.
func Combine(outcomes ...Outcome) Outcome {
	var failures core.Failures
	for _, o := range outcomes {
		if !o.Succeeded {
			failures = append(failures, o.Failures...)
		}
	}
	if len(failures) == 0 {
		return Succeed()
	}
	return Outcome{Succeeded: false, Failures: failures.Dedupe()}
}

// Validate is Combine(CheckAll(args...)...).
func Validate(args ...Argument) Outcome {
	return Combine(CheckAll(args...)...)
}

// Result converts the outcome into a result so it composes with result.Combine.
func (o Outcome) Result() result.Result[result.Void] {
	if o.Succeeded {
		return result.Succeed()
	}
	return result.Fail[result.Void](o.Failures)
}

// Err returns the failures as an error, or nil on success.
func (o Outcome) Err() error {
	if o.Succeeded {
		return nil
	}
	return o.Failures
}

func (o Outcome) IsFailure() bool {
	return !o.Succeeded
}

// Succeed returns a successful outcome.
func Succeed() Outcome {
	return Outcome{Succeeded: true}
}

// Fail returns a failed outcome carrying the failures.
func Fail(failures ...core.Failure) Outcome {
	if len(failures) == 0 {
		return Succeed()
	}
	return Outcome{Succeeded: false, Failures: failures}
}

// When fails with f unless cond holds.
func When(cond bool, f core.Failure) Outcome {
	if cond {
		return Succeed()
	}
	return Fail(f)
}

func MissingValue(target string) core.Failure {
	return core.NewFailure(core.CodeMissingValue, target, fmt.Sprintf("%s is required", target))
}

func InvalidInput(target, message string) core.Failure {
	return core.NewFailure(core.CodeInvalidInput, target, message)
}

func Forbidden(target, message string) core.Failure {
	return core.NewFailure(core.CodeForbidden, target, message)
}

func NotFound(target, message string) core.Failure {
	return core.NewFailure(core.CodeNotFound, target, message)
}

func Taxonomy(target, message string) core.Failure {
	return core.NewFailure(core.CodeTaxonomy, target, message)
}

func BusinessRule(target, message string) core.Failure {
	return core.NewFailure(core.CodeBusinessRule, target, message)
}

func Duplicate(target, message string) core.Failure {
	return core.NewFailure(core.CodeDuplicate, target, message)
}

func Unexpected(target, message string) core.Failure {
	return core.NewFailure(core.CodeUnexpected, target, message)
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
