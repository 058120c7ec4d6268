// Package respond provides utilities for sending HTTP responses in JSON format.
// Every error body has the shape {"error": "<message>"}. Internal details are
// logged with credentials masked (text.MaskError) and never returned to the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"page-insight/internal/domain/entity"
	"page-insight/internal/utils/text"
)

// Fixed response messages.
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgInternalError    = "Internal server error"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	Message(w, code, err.Error())
}

// Message writes {"error": msg} with the given status code.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// MethodNotAllowed writes a 405 response and advertises the allowed methods.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	Message(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// SafeError writes err without leaking internals. A validation error sent
// with a 4xx code is shown to the client; anything else is logged with
// credentials masked and answered with a generic message for its status.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var vErr *entity.ValidationError
	if code < http.StatusInternalServerError && errors.As(err, &vErr) {
		Message(w, code, vErr.Message)
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", text.MaskError(err)))
	Message(w, code, genericMessage(code))
}

func genericMessage(code int) string {
	if code >= http.StatusInternalServerError {
		return MsgInternalError
	}
	if status := http.StatusText(code); status != "" {
		return status
	}
	return "Request failed"
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// AppErrorResponse writes err. An *AppError anywhere in the chain decides
// the status and user message, and its internal error is logged sanitized.
// Any other error falls back to SafeError with code.
func AppErrorResponse(w http.ResponseWriter, r *http.Request, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().ErrorContext(r.Context(), "application error",
				slog.String("status", http.StatusText(appErr.Code)),
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", text.MaskError(appErr.Err)))
		}
		Message(w, appErr.Code, appErr.UserMsg)
		return
	}

	SafeError(w, code, err)
}
