package core

import (
	"errors"
	"net/http"
)

// HTTPError represents an HTTP error with status code and translation key.
// The Key field is intended for i18n/l10n: the transport layer looks up
// translated messages with it.
type HTTPError struct {
	Code     int      `json:"status"`
	Key      string   `json:"key"`
	Failures Failures `json:"failures,omitempty"`
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
)

// StatusForCode maps one failure code to its HTTP status.
func StatusForCode(code ErrorCode) int {
	switch code {
	case CodeMissingValue, CodeInvalidInput, CodeTaxonomy:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate, CodeConflict:
		return http.StatusConflict
	case CodeBusinessRule, CodeInvalidStatusTransition, CodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// statusRank orders statuses when several failures disagree.
// Server errors dominate, then authorization, existence, conflicts,
// business rules and finally plain input problems.
var statusRank = map[int]int{
	http.StatusInternalServerError: 6,
	http.StatusForbidden:           5,
	http.StatusNotFound:            4,
	http.StatusConflict:            3,
	http.StatusUnprocessableEntity: 2,
	http.StatusBadRequest:          1,
}

// StatusForFailures picks the most significant status among the failures.
func StatusForFailures(fs Failures) int {
	status := http.StatusBadRequest
	for _, f := range fs {
		if s := StatusForCode(f.Code); statusRank[s] > statusRank[status] {
			status = s
		}
	}
	return status
}

// ToHTTPError converts any error returned by the core into an HTTPError.
// It is the single adapter between failure values and the transport layer.
func ToHTTPError(err error) HTTPError {
	if err == nil {
		return HTTPError{Code: http.StatusOK, Key: "ok"}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var ucErr *Error
	if errors.As(err, &ucErr) {
		var base HTTPError
		switch ucErr.Kind {
		case KindInvalidParameter:
			base = ErrBadRequest
			if len(ucErr.Failures) > 0 {
				base.Code = StatusForFailures(ucErr.Failures)
			}
		case KindNotFound:
			base = ErrNotFound
		case KindForbidden:
			base = ErrForbidden
		case KindUnprocessable:
			base = ErrUnprocessableEntity
		case KindConflict:
			base = ErrConflict
		default:
			return ErrInternalServerError
		}
		base.Failures = ucErr.Failures
		return base
	}

	var fs Failures
	if errors.As(err, &fs) {
		return HTTPError{Code: StatusForFailures(fs), Key: "validation_failed", Failures: fs}
	}

	var f Failure
	if errors.As(err, &f) {
		return HTTPError{Code: StatusForCode(f.Code), Key: string(f.Code), Failures: Failures{f}}
	}

	return ErrInternalServerError
}

// StatusFor returns only the HTTP status of ToHTTPError.
func StatusFor(err error) int {
	return ToHTTPError(err).Code
}
