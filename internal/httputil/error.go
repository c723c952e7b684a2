package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/AdamBeresnev/courtside/internal/service"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

func Forbidden(w http.ResponseWriter, msg string) {
	slog.Warn("forbidden", "message", msg)
	http.Error(w, msg, http.StatusForbidden)
}

// StatusFor maps a service error to a status code and the message shown to
// the user. Unexpected errors get the generic message and are not leaked.
func StatusFor(err error, generic string) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return http.StatusBadRequest, userMessage(err, service.ErrInvalid)
	case errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest, userMessage(err, service.ErrConflict)
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, userMessage(err, service.ErrForbidden)
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, userMessage(err, service.ErrNotFound)
	}
	return http.StatusInternalServerError, generic
}

// userMessage drops the sentinel's own text from the front of err.
func userMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// ServiceError answers a page request with the status matching err.
func ServiceError(w http.ResponseWriter, generic string, err error) {
	status, msg := StatusFor(err, generic)
	switch status {
	case http.StatusBadRequest:
		BadRequest(w, msg, err)
	case http.StatusForbidden:
		Forbidden(w, msg)
	case http.StatusNotFound:
		NotFound(w, msg, err)
	default:
		InternalServerError(w, generic, err)
	}
}
