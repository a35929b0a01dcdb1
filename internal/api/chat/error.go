package chat

import "jusbook/pkg/response"

var (
	ErrSessionStore   = response.NewError(503, "SESSION_STORE_UNAVAILABLE", "conversation session store unavailable")
	ErrEmptySessionID = response.NewError(400, "VALIDATION_ERROR", "session id is required")
	ErrMissingMessage = response.NewError(400, "VALIDATION_ERROR", "message is required")
	ErrSessionCorrupt = response.NewError(500, "SESSION_CORRUPT", "conversation session could not be decoded")
)
