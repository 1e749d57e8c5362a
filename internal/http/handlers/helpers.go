package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/engine"
	"github.com/mauv0809/matchday/internal/match"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// maxBodyBytes bounds request bodies. Lineups are the largest payload.
const maxBodyBytes = 1 << 20

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes carried in ErrorResponse.Code.
const (
	CodeNotFound             = "not_found"
	CodeInvalidTransition    = "invalid_transition"
	CodeInvalidValue         = "invalid_value"
	CodeConfirmationRequired = "confirmation_required"
	CodeStale                = "stale"
	CodeUnavailable          = "store_unavailable"
	CodeBadRequest           = "bad_request"
	CodeInternal             = "internal"
)

// StatusFor maps an error onto its HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, match.ErrStale):
		return http.StatusPreconditionFailed, CodeStale
	case errors.Is(err, match.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, match.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, engine.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, CodeConfirmationRequired
	case errors.Is(err, match.ErrInvalidValue):
		return http.StatusUnprocessableEntity, CodeInvalidValue
	case errors.Is(err, match.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, CodeUnavailable
	}
	return http.StatusInternalServerError, CodeInternal
}

// WriteError writes err as an ErrorResponse with the mapped status.
func WriteError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "status", status, "error", err)
	}
	writeJSONStatus(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSONStatus(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: CodeBadRequest})
}

// WriteJSON writes v with status 200.
func WriteJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
