package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkordes/eventboard/internal/domain"
)

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// notFoundBody returns an errorResponse for a missing resource.
func notFoundBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an errorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an errorResponse for a request rejected before it
// reaches validation (e.g. missing or malformed body).
func requestBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: message}}
}

// internalBody is returned for unexpected failures; details go to the log only.
func internalBody() errorResponse {
	return errorResponse{Error: errorDetail{Code: "internal_error", Message: "internal server error"}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.X: validation error: title is required" → "title is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // client gone; nothing useful to do
}
