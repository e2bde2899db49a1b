package core

// ErrorCode classifies a failure so the boundary can pick a response status.
// Codes are strings for readable logs and natural JSON serialization.
type ErrorCode string

const (
	// CodeMissingValue indicates a required value was not provided.
	CodeMissingValue ErrorCode = "missingValue"

	// CodeInvalidInput indicates a malformed value: bad identifier, enum
	// membership, geometry, number or list syntax.
	CodeInvalidInput ErrorCode = "invalidInput"

	// CodeForbidden indicates the caller lacks the capability for the operation.
	CodeForbidden ErrorCode = "forbidden"

	// CodeNotFound indicates a referenced resource does not exist.
	CodeNotFound ErrorCode = "notFound"

	// CodeTaxonomy indicates a value does not match the reference data.
	CodeTaxonomy ErrorCode = "taxonomy"

	// CodeBusinessRule indicates a domain rule rejected an otherwise valid request.
	CodeBusinessRule ErrorCode = "businessRule"

	// CodeInvalidStatusTransition indicates a status change outside the transition table.
	CodeInvalidStatusTransition ErrorCode = "invalidStatusTransition"

	// CodeDuplicate indicates the resource already exists.
	CodeDuplicate ErrorCode = "duplicate"

	// CodeConflict indicates a state conflict with the current resource.
	CodeConflict ErrorCode = "conflict"

	// CodeUnprocessable indicates a request that is well formed but cannot be applied.
	CodeUnprocessable ErrorCode = "unprocessable"

	// CodeUnexpected indicates an internal defect rather than bad input.
	CodeUnexpected ErrorCode = "unexpected"
)

// String returns the string representation of the ErrorCode.
func (c ErrorCode) String() string {
	return string(c)
}

// IsClientError reports whether the code describes a caller-side problem.
func (c ErrorCode) IsClientError() bool {
	return c != CodeUnexpected && c != ""
}
