package types

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry in a mentor conversation transcript.
type ChatMessage struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	IsFromUser bool      `json:"is_user"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewUserMessage creates a message authored by the user.
func NewUserMessage(text string, at time.Time) ChatMessage {
	return ChatMessage{ID: uuid.New(), Text: text, IsFromUser: true, Timestamp: at}
}

// NewMentorMessage creates a message authored by the mentor.
func NewMentorMessage(text string, at time.Time) ChatMessage {
	return ChatMessage{ID: uuid.New(), Text: text, IsFromUser: false, Timestamp: at}
}

// SendMessageRequest represents the request body for posting a chat message.
type SendMessageRequest struct {
	Text string `json:"text" validate:"max=4000"`
}

// Validate validates the SendMessageRequest using the validator.
// Blank text is rejected by the chat flow itself, not here.
func (r *SendMessageRequest) Validate() error {
	return validate.Struct(r)
}
