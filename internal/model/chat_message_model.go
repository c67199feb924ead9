package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_session_seq,priority:1"`
	Role          string    `gorm:"type:varchar(10);not null"`
	Content       string    `gorm:"type:text;not null"`
	Sequence      int       `gorm:"not null;index:idx_chat_messages_session_seq,priority:2"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	Hidden        bool      `gorm:"default:false"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
