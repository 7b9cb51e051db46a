package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Chat struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       string    `gorm:"index;not null"`
	FirstMessage string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ChatId    uuid.UUID      `gorm:"type:uuid;index;not null"`
	Role      string         `gorm:"not null"`
	Content   string         `gorm:"type:text"`
	Sources   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
