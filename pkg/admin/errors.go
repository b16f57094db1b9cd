// Error handling utilities for the admin API.
// Full errors are logged server-side; clients get stable, generic messages.

package admin

import "log/slog"

// Safe error messages for client responses.
const (
	// ErrMsgInternalError is returned for unexpected internal errors.
	ErrMsgInternalError = "An internal error occurred"

	// ErrMsgInvalidJSON is returned for JSON parsing errors.
	ErrMsgInvalidJSON = "Invalid JSON in request body"

	// ErrMsgNotConfigured is returned when the encryption secret is missing.
	ErrMsgNotConfigured = "Encryption secret is not configured"
)

// sanitizeJSONError logs a JSON decoding failure and returns the generic
// client message. Parse errors can echo attacker-controlled input, so the
// detail stays server-side.
func sanitizeJSONError(err error, log *slog.Logger) string {
	if log != nil {
		log.Debug("JSON parsing failed", "error", err)
	}
	return ErrMsgInvalidJSON
}
