// Package httpjson writes the JSON envelopes used by the admin API.
//
// Failure bodies are always {"error": "<message>"} so clients can surface
// the message verbatim. Success bodies either carry the payload directly
// (reads) or a {"message": ...} envelope (mutations).
package httpjson

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
	User    any    `json:"user,omitempty"`
}

func write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with v as the body.
func OK(w http.ResponseWriter, v any) {
	write(w, http.StatusOK, v)
}

// Message writes a 200 response with a {"message": ...} envelope.
func Message(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, messageBody{Message: msg})
}

// MessageWithUser writes a success envelope carrying a user payload.
// Status is typically 200 for updates and 201 for creates.
func MessageWithUser(w http.ResponseWriter, status int, msg string, user any) {
	write(w, status, messageBody{Message: msg, User: user})
}

// Error writes an {"error": ...} envelope with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	write(w, status, errorBody{Error: msg})
}

// BadRequest writes a 400 error envelope.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// Unauthorized writes a 401 error envelope.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "unauthorized")
}

// Forbidden writes a 403 error envelope.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "forbidden")
}

// NotFound writes a 404 error envelope.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Conflict writes a 409 error envelope.
func Conflict(w http.ResponseWriter, msg string) {
	Error(w, http.StatusConflict, msg)
}

// ServerError writes a 500 error envelope with a generic message. The
// underlying error is logged by the caller, never exposed.
func ServerError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}
