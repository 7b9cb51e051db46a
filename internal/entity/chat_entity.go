package entity

import (
	"time"

	"github.com/google/uuid"
)

type TurnMessage struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// ConversationTurn is one question/answer exchange as stored in the chat
// history. Messages are ordered chronologically within the turn.
type ConversationTurn struct {
	ChatId   uuid.UUID
	Messages []TurnMessage
}
