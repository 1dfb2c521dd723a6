package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// messageResponse wraps the human-readable result of operations that
// return no resource.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// decodeJSON reads the request body into v. An empty body or malformed
// JSON yields an error the caller turns into a 400.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errors.New("request body is empty")
	}
	return err
}
