package implementation

import (
	"context"
	"time"

	"syllabus-bot-be/internal/constant"
	"syllabus-bot-be/internal/entity"
	"syllabus-bot-be/internal/model"
	"syllabus-bot-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

// SaveExchange stores one question/answer pair as a chat with two messages.
// Both messages share the chat's timestamp so the turn sorts as a unit.
func (r *ChatRepositoryImpl) SaveExchange(ctx context.Context, userId, question, answer string, sources []byte) error {
	now := time.Now()

	chat := model.Chat{
		Id:           uuid.New(),
		UserId:       userId,
		FirstMessage: question,
		CreatedAt:    now,
	}

	userMessage := model.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      constant.ChatMessageRoleUser,
		Content:   question,
		CreatedAt: now,
	}

	botMessage := model.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chat.Id,
		Role:      constant.ChatMessageRoleModel,
		Content:   answer,
		Sources:   sources,
		CreatedAt: now.Add(time.Millisecond),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		if err := tx.Create(&userMessage).Error; err != nil {
			return err
		}
		return tx.Create(&botMessage).Error
	})
}

// GetRecentTurns returns the user's latest chats, newest first, each with its
// messages in chronological order.
func (r *ChatRepositoryImpl) GetRecentTurns(ctx context.Context, userId string, limit int) ([]entity.ConversationTurn, error) {
	if limit <= 0 {
		limit = 5
	}

	var chats []model.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}

	turns := make([]entity.ConversationTurn, 0, len(chats))
	for _, chat := range chats {
		var messages []model.ChatMessage
		err := r.db.WithContext(ctx).
			Where("chat_id = ?", chat.Id).
			Order("created_at ASC").
			Find(&messages).Error
		if err != nil {
			return nil, err
		}

		turn := entity.ConversationTurn{ChatId: chat.Id}
		for _, m := range messages {
			turn.Messages = append(turn.Messages, entity.TurnMessage{
				Role:      m.Role,
				Content:   m.Content,
				Timestamp: m.CreatedAt,
			})
		}
		turns = append(turns, turn)
	}

	return turns, nil
}
