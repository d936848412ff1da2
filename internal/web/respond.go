// Package web holds the shared JSON response envelope and error mapping.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/focusflow/backend/internal/errs"
)

// envelope is the standard response shape: {"success":...} plus data or error.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// OK writes a success envelope with data.
func OK(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, envelope{Success: true, Data: data})
}

// OKMessage writes a success envelope with a human-readable message and data.
func OKMessage(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given message.
func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, envelope{Success: false, Error: message})
}

// FailCode writes a failure envelope carrying a machine-readable code,
// used by the rate limiter.
func FailCode(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, envelope{Success: false, Error: map[string]string{
		"message": message,
		"code":    code,
	}})
}

// Error maps a service-layer error to its HTTP status and failure envelope.
// Messages from the sentinel taxonomy are safe to surface; anything
// unclassified becomes an opaque 500 so internals never leak.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errs.IsValidation(err):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrEmailExists), errors.Is(err, errs.ErrUsernameTaken):
		Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials), errors.Is(err, errs.ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	case errs.IsDelivery(err):
		Fail(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, errs.ErrRateLimited):
		FailCode(w, http.StatusTooManyRequests, err.Error(), "ERR_RATE_LIMIT")
	default:
		Fail(w, http.StatusInternalServerError, "internal error")
	}
}
