// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/auth"
	"github.com/dalemusser/stratatour/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// ErrorLogger wraps the zap logger for error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg, requestFields(r, err)...)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	e.logger.Error(msg, append(requestFields(r, err), fields...)...)
}

// requestFields names the request and, behind RequireAdmin, the admin.
func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}
	if c, ok := auth.CurrentAdmin(r); ok {
		fields = append(fields, zap.String("admin_id", c.AdminID()))
	}
	return fields
}

// Fail writes the error envelope for err. Upstream and unclassified errors
// are logged first; caller errors are not.
func (e *ErrorLogger) Fail(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindUpstreamFailure, apperr.KindUnknown:
		e.Log(r, "request failed", err)
	}
	jsonutil.Fail(w, err)
}

// Handler provides the JSON fallbacks for unmatched routes.
type Handler struct{}

// NewHandler creates a new error Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound writes a 404 envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonutil.NotFound(w, "Not found")
}

// MethodNotAllowed writes a 405 envelope.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutil.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}
