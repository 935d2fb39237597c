package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/core/paging"
)

// envelope is the uniform response body. Success responses carry data
// (plus pagination for lists); failures carry a single error string.
type envelope struct {
	Success    bool           `json:"success"`
	Data       any            `json:"data,omitempty"`
	Message    string         `json:"message,omitempty"`
	Error      string         `json:"error,omitempty"`
	Pagination *paging.Result `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

func respondList(w http.ResponseWriter, data any, p paging.Result) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &p})
}

// respondError maps service errors onto HTTP statuses. Anything outside
// the known taxonomy is logged and reported as an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	var status int
	var msg string

	switch {
	case apperr.IsValidation(err):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status, msg = http.StatusNotFound, "resource not found"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, apperr.ErrInactiveAccount):
		status, msg = http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, apperr.ErrDuplicate):
		status, msg = http.StatusConflict, "a record with those details already exists"
	case errors.Is(err, apperr.ErrInUse):
		status, msg = http.StatusConflict, err.Error()
	case apperr.IsTransition(err):
		status, msg = http.StatusConflict, err.Error()
	default:
		log.Error().Err(err).Msg("request failed")
		status, msg = http.StatusInternalServerError, "internal server error"
	}
	writeJSON(w, status, envelope{Success: false, Error: msg})
}
