package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserPermission is an explicit grant row. The (UserId, Name) pair is the
// identity; the whole set for a user is replaced atomically on update.
type UserPermission struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Granted   bool
	CreatedAt time.Time
}
