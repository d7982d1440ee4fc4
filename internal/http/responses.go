package http

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"finboard/internal/core"
	applog "finboard/internal/log"
	"finboard/internal/store"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

const (
	msgInvalidBody         = "Invalid request body"
	msgInvalidMonth        = "Invalid month"
	msgTransactionNotFound = "Transaction not found"
	msgNotFound            = "Not found"
	msgMethodNotAllowed    = "Method not allowed"
	msgTooManyRequests     = "Too many requests"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// failure maps err onto the error taxonomy: validation → 400 with the field
// message, not found → 404, anything else is logged with op and reported
// as an opaque 500 carrying generic.
func failure(w http.ResponseWriter, r *http.Request, op, generic string, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, msgTransactionNotFound)
	default:
		applog.FromContext(r.Context()).OperationError(r.Context(), generic, op, err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}
