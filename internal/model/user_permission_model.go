package model

import (
	"time"

	"github.com/google/uuid"
)

type UserPermission struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_permissions_user_name,priority:1"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_permissions_user_name,priority:2"`
	Granted   bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
