package apierror

import (
	"fmt"
	"net/http"
)

// APIError is a caller-facing error with a stable code and the HTTP status
// it maps to. Services return these for every expected failure; anything
// else is treated as an internal error at the handler boundary.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// Opaque builds a 500-class error that deliberately carries no detail about
// the underlying cause. The cause is expected to be logged at the call site.
func Opaque(code string, message string) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: http.StatusInternalServerError}
}
