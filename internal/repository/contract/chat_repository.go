package contract

import (
	"context"

	"syllabus-bot-be/internal/entity"
)

// ChatRepository is the chat store contract: persisting finished exchanges
// and reading back recent conversation turns for context carry-over.
type ChatRepository interface {
	SaveExchange(ctx context.Context, userId, question, answer string, sources []byte) error
	GetRecentTurns(ctx context.Context, userId string, limit int) ([]entity.ConversationTurn, error)
}
