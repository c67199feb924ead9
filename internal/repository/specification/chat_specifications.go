package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByChatbotID struct {
	ChatbotID uuid.UUID
}

func (s ByChatbotID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chatbot_id = ?", s.ChatbotID)
}

// OwnedByUser scopes sessions to their owning user.
type OwnedByUser struct {
	UserID uuid.UUID
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// NotHidden excludes soft-deleted sessions from user-facing listings. The
// filter is explicit rather than relying on query scoping elsewhere.
type NotHidden struct{}

func (s NotHidden) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("hidden = ?", false)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
