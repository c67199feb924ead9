package model

import (
	"time"

	"github.com/google/uuid"
)

type SystemSettings struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationName string    `gorm:"type:varchar(200)"`
	FlowiseEndpoint  string    `gorm:"type:varchar(500);not null"`
	FlowiseApiKey    string    `gorm:"type:varchar(500)"`
	DefaultModel     string    `gorm:"type:varchar(100)"`
	Temperature      float64   `gorm:"default:0.7"`
	MaxTokens        int       `gorm:"default:2000"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}
