package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatbotId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId         *uuid.UUID `gorm:"type:uuid;index"` // nil for anonymous widget sessions
	Status         string     `gorm:"type:varchar(20);not null;default:'Active'"`
	StartedAt      time.Time  `gorm:"not null"`
	EndedAt        *time.Time
	LastActivityAt time.Time `gorm:"not null;index"`
	LastSequence   int       `gorm:"not null;default:0"`
	Rating         *int
	Feedback       *string   `gorm:"type:text"`
	Hidden         bool      `gorm:"default:false;index"`
	HiddenAt       *time.Time
	Messages       []ChatMessage `gorm:"foreignKey:ChatSessionId;constraint:OnDelete:CASCADE"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
