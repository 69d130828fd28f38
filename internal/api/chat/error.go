package chat

import "HealthifyChat/pkg/response"

var (
	ErrInvalidRequest     = response.NewError(400, `invalid request format, expected {"message": "your message"}`)
	ErrInvalidSessionID   = response.NewError(400, "invalid session id")
	ErrSessionNotFound    = response.NewError(404, "session not found")
	ErrFoodNotFound       = response.NewError(404, "food not found")
	ErrTurnFailed         = response.NewError(500, "failed to process message")
	ErrHistoryUnavailable = response.NewError(503, "chat history is unavailable")
)

// ErrorReply is sent alongside ErrTurnFailed so clients always have text to show.
const ErrorReply = "Sorry, I encountered an error. Please try again."
