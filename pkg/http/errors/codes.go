package errors

// Error codes for standardized error responses.
const (
	// Authentication errors
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeInvalidToken = "invalid_token"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Quiz errors
	ErrCodeAttemptNotFound  = "attempt_not_found"
	ErrCodeAttemptStart     = "attempt_start_failed"
	ErrCodeLeaderboardFetch = "leaderboard_fetch_failed"

	// Assistant / WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
