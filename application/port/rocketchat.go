package port

import (
	"context"
	"fmt"
)

// ChatMessage is one outbound Rocket.Chat message. Constructed fresh per
// event, never reused.
type ChatMessage struct {
	Channel   string
	Text      string
	Alias     string
	IconEmoji string
}

// RocketChatClient posts a message to the Rocket.Chat incoming-webhook
// endpoint. Rejections surface as *PostError so callers can inspect the
// status code.
type RocketChatClient interface {
	PostMessage(ctx context.Context, msg ChatMessage) error
}

// PostError is a structured rejection from Rocket.Chat: the HTTP status and
// a bounded slice of the response body.
type PostError struct {
	StatusCode int
	Body       string
}

func (e *PostError) Error() string {
	return fmt.Sprintf("rocketchat post: status %d, body: %s", e.StatusCode, e.Body)
}
