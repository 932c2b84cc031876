package rest

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/logging"
)

const (
	errCodeNotFound         = "NOT_FOUND"
	errCodeInsufficientData = "INSUFFICIENT_DATA"
	errCodeInvalidVector    = "INVALID_VECTOR"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeErrorWithCode(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeServiceError maps core errors to status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeErrorWithCode(w, http.StatusNotFound, err.Error(), errCodeNotFound)
	case errors.Is(err, domain.ErrInsufficientData):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeInsufficientData)
	case errors.Is(err, domain.ErrInvalidVector):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeInvalidVector)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
