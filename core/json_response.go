package core

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the envelope written at the transport boundary.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Meta  any          `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail is the client-facing rendering of a failed outcome.
type ErrorDetail struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Failures Failures `json:"failures,omitempty"`
}

// WriteJSON writes data with the given status.
func WriteJSON(w http.ResponseWriter, status int, data, meta any) error {
	return write(w, status, JSONResponse{Data: data, Meta: meta})
}

// WriteError renders any core error with the status chosen by ToHTTPError.
func WriteError(w http.ResponseWriter, err error) error {
	httpErr := ToHTTPError(err)
	return write(w, httpErr.Code, JSONResponse{
		Error: &ErrorDetail{
			Code:     httpErr.Key,
			Message:  http.StatusText(httpErr.Code),
			Failures: httpErr.Failures,
		},
	})
}

func write(w http.ResponseWriter, status int, body JSONResponse) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
