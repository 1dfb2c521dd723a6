package handler

import (
	"errors"
	"net/http"

	"github.com/tronghn/taskhub/internal/apierr"
	"github.com/tronghn/taskhub/internal/model"
)

// handleError writes the HTTP reply for a service-layer error. Typed API
// errors carry their own status; anything else is an internal error and
// its detail stays out of the response body.
func handleError(w http.ResponseWriter, err error) {
	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, errorResponse{Error: apiErr.Message})
		return
	}

	if errors.Is(err, model.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func handleValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
