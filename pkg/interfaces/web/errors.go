package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/errs"
	"github.com/vsinha/plantrecon/pkg/infrastructure/logging"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func writeErrorDetails(w http.ResponseWriter, r *http.Request, message, code string, status int, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
		Details:   details,
	})
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorDetails(w, r, message, code, status, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps engine errors to status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *entities.InsufficientStockError
	var missingErr *entities.MissingSourceError
	var dupErr *entities.DuplicateKeyError
	switch {
	case errors.As(err, &stockErr):
		writeErrorDetails(w, r, err.Error(), "INSUFFICIENT_STOCK", http.StatusConflict, stockErr)
	case errors.As(err, &missingErr):
		writeErrorDetails(w, r, err.Error(), "SOURCE_UNAVAILABLE", http.StatusServiceUnavailable, map[string]string{"source": string(missingErr.Source)})
	case errors.Is(err, entities.ErrInvalidEntry):
		writeError(w, r, err.Error(), "INVALID_ENTRY", http.StatusBadRequest)
	case errors.As(err, &dupErr):
		writeErrorDetails(w, r, err.Error(), "DUPLICATE_KEY", http.StatusConflict, map[string]any{"drawing_numbers": dupErr.Keys, "dropped": dupErr.Dropped})
	case errors.Is(err, entities.ErrDuplicateKey):
		writeError(w, r, err.Error(), "DUPLICATE_KEY", http.StatusConflict)
	default:
		logging.Error(r.Context(), "request failed", slog.Any("err", errs.Loggable(err)))
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
