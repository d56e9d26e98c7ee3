package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"ideastash/internal/service"
	"ideastash/internal/storage"
)

// ErrorResponse is the JSON error envelope. Code is stable across releases;
// Error is a human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes returned in the envelope.
const (
	codeValidation   = "VALIDATION_FAILED"
	codeNotFound     = "NOT_FOUND"
	codeLocked       = "IDEA_LOCKED"
	codeInvalidField = "INVALID_FIELD"
	codeBadRequest   = "BAD_REQUEST"
	codeInternal     = "INTERNAL_ERROR"
)

// writeError maps a service or storage error onto a status code and writes
// the envelope.
func writeError(w http.ResponseWriter, err error) {
	var (
		ve *service.ValidationError
		le *service.LockedError
		fe *storage.InvalidFieldError
	)

	switch {
	case errors.As(err, &ve):
		writeErrorCode(w, err, codeValidation, http.StatusBadRequest)
	case errors.As(err, &fe):
		writeErrorCode(w, err, codeInvalidField, http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		writeErrorCode(w, err, codeNotFound, http.StatusNotFound)
	case errors.As(err, &le):
		writeErrorCode(w, err, codeLocked, http.StatusLocked)
	default:
		writeErrorCode(w, err, codeInternal, http.StatusInternalServerError)
	}
}

// badRequest writes a 400 with a literal message.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, ErrorResponse{Error: message, Code: codeBadRequest}, http.StatusBadRequest)
}

func writeErrorCode(w http.ResponseWriter, err error, code string, status int) {
	writeJSON(w, ErrorResponse{Error: err.Error(), Code: code}, status)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
