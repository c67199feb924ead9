package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chatbot struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(200);not null"`
	Department   string         `gorm:"type:varchar(100);not null;index"`
	AiModel      string         `gorm:"type:varchar(100)"`
	FlowiseId    string         `gorm:"type:varchar(100);index"`
	IsActive     bool           `gorm:"default:true;index"`
	SystemPrompt string         `gorm:"type:text"`
	CreatedBy    *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Chatbot) TableName() string {
	return "chatbots"
}
