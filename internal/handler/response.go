package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mycask-api/internal/model"
	"mycask-api/pkg/apierror"
)

// writeJSON returns the resource directly; only error responses are wrapped
// in an envelope.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	default:
		// Unclassified errors stay opaque to the caller but visible in logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Success: false,
		Error:   body,
	})
}

func writeValidationError(w http.ResponseWriter, message string, field string) {
	writeError(w, apierror.New("VALIDATION_ERROR", message, field, http.StatusUnprocessableEntity))
}
