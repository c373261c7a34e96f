// Package jsonutil provides helper functions for JSON API responses.
//
// Every content endpoint answers with the same envelope:
//
//	{"success": true,  "message": "...", "data": {...}}
//	{"success": false, "error": "..."}
//
// Use these helpers in handlers instead of encoding responses by hand.
package jsonutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
)

// MaxBodyBytes caps JSON request bodies read through Decode (1 MB).
const MaxBodyBytes = 1 << 20

// Envelope is the response body shape for content endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200 OK success envelope around data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Success writes a success envelope with a human-readable message.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes an error envelope with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// BadRequest writes a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 Unauthorized error response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// NotFound writes a 404 Not Found error response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError writes a 500 Internal Server Error response.
// Do not expose internal details to clients - log the actual error separately.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// Fail writes the error envelope for an operation error, choosing the status
// from its apperr kind. Unclassified errors become a generic 500.
func Fail(w http.ResponseWriter, err error) {
	Error(w, apperr.HTTPStatus(err), apperr.Message(err))
}

// ValidationError writes a 400 Bad Request response with field-level errors.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   "validation failed",
		"fields":  fields,
	})
}

// Decode reads and decodes JSON from the request body into v.
// Bodies over MaxBodyBytes and malformed JSON come back as InvalidInput.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperr.InvalidInput("Request body too large")
		}
		return apperr.InvalidInput("Invalid JSON payload")
	}
	return nil
}
