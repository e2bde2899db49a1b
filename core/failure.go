package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Failure describes one rejected value: which target, why, and how to classify it.
type Failure struct {
	Target  string    `json:"target"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (f Failure) Error() string {
	if f.Target == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Target, f.Message)
}

// NewFailure creates a failure with the given code.
func NewFailure(code ErrorCode, target, message string) Failure {
	return Failure{Target: target, Code: code, Message: message}
}

// Failures is an ordered collection of failures that satisfies the error interface.
type Failures []Failure

func (fs Failures) Error() string {
	if len(fs) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fs Failures) IsEmpty() bool {
	return len(fs) == 0
}

// Has reports whether any failure targets the given field.
func (fs Failures) Has(target string) bool {
	for _, f := range fs {
		if f.Target == target {
			return true
		}
	}
	return false
}

// Get returns all failures for a target.
func (fs Failures) Get(target string) Failures {
	var out Failures
	for _, f := range fs {
		if f.Target == target {
			out = append(out, f)
		}
	}
	return out
}

// HasCode reports whether any failure carries the code.
func (fs Failures) HasCode(code ErrorCode) bool {
	for _, f := range fs {
		if f.Code == code {
			return true
		}
	}
	return false
}

// Targets returns the distinct targets in first-seen order.
func (fs Failures) Targets() []string {
	var targets []string
	seen := make(map[string]bool)
	for _, f := range fs {
		if !seen[f.Target] {
			targets = append(targets, f.Target)
			seen[f.Target] = true
		}
	}
	return targets
}

// Codes returns the distinct codes in first-seen order.
func (fs Failures) Codes() []ErrorCode {
	var codes []ErrorCode
	for _, f := range fs {
		if !slices.Contains(codes, f.Code) {
			codes = append(codes, f.Code)
		}
	}
	return codes
}

// Dedupe drops repeated failures sharing the same message and target.
// The first occurrence wins, order is preserved.
func (fs Failures) Dedupe() Failures {
	if len(fs) == 0 {
		return nil
	}

	type key struct{ message, target string }
	seen := make(map[key]struct{}, len(fs))
	out := make(Failures, 0, len(fs))
	for _, f := range fs {
		k := key{f.Message, f.Target}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}

// AsFailures flattens any error into failures.
// Failure and Failures values are unwrapped; *Error contributes its failures or,
// when it has none, a single failure derived from its kind. Anything else
// becomes one unexpected failure.
func AsFailures(err error) Failures {
	if err == nil {
		return nil
	}

	var fs Failures
	if errors.As(err, &fs) {
		return fs
	}

	var f Failure
	if errors.As(err, &f) {
		return Failures{f}
	}

	var ucErr *Error
	if errors.As(err, &ucErr) {
		if len(ucErr.Failures) > 0 {
			return ucErr.Failures
		}
		return Failures{{Code: ucErr.Kind.Code(), Message: ucErr.Message}}
	}

	return Failures{{Code: CodeUnexpected, Message: err.Error()}}
}
