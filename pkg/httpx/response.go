package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/cache"
	"github.com/tair/supply-manager/pkg/logger"
	"github.com/tair/supply-manager/pkg/month"
)

// Response is the JSON envelope of every endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func RespondOK(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func RespondCreated(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// RespondMessage sends an error envelope with a fixed message
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Response{Success: false, Error: message})
}

// StatusFor maps an error kind to an HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrInvalidState),
		errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrConnection):
		return http.StatusServiceUnavailable
	case errors.Is(err, cache.ErrLockBusy):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps err to a status and writes it. Server-side failures
// are logged and their details hidden from the client.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		if status == http.StatusServiceUnavailable {
			message = "Database unavailable"
		} else {
			message = "Internal server error"
		}
	}
	RespondMessage(w, status, message)
}

// DecodeJSON reads the request body into dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// PathUint parses a numeric path variable
func PathUint(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || v == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(v), nil
}

// QueryInt parses an optional integer query parameter
func QueryInt(r *http.Request, name string, defaultValue int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return defaultValue
	}
	return v
}

// QueryUint parses an optional id query parameter
func QueryUint(r *http.Request, name string) uint {
	v, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// PathMonth parses a YYYY-MM path variable
func PathMonth(r *http.Request, name string) (month.Month, error) {
	return month.Parse(mux.Vars(r)[name])
}

// QueryMonth parses an optional YYYY-MM query parameter; absent means zero
func QueryMonth(r *http.Request, name string) (month.Month, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return month.Month{}, nil
	}
	return month.Parse(v)
}
