package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write json response", "error", err)
	}
}

func JSONSuccess(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: msg})
}

func JSONError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorResponse{Error: msg})
}

// JSONServiceError logs err and answers with the matching status as {"error": ...}.
func JSONServiceError(w http.ResponseWriter, generic string, err error) {
	status, msg := StatusFor(err, generic)
	if status == http.StatusInternalServerError {
		slog.Error(generic, "error", err)
		// 500s carry the underlying cause.
		msg = generic + ": " + err.Error()
	} else {
		slog.Warn("request rejected", "status", status, "error", err)
	}
	JSONError(w, status, msg)
}

func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// WantsJSON reports whether the caller is a script rather than a page navigation.
func WantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
