package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one continuous conversation between a caller and a chatbot.
// UserId is nil for anonymous widget sessions. Hidden is an orthogonal
// soft-delete flag: hidden sessions drop out of user-facing history but stay
// in storage for audit and undo.
type ChatSession struct {
	Id             uuid.UUID
	ChatbotId      uuid.UUID
	UserId         *uuid.UUID
	Status         string
	StartedAt      time.Time
	EndedAt        *time.Time
	LastActivityAt time.Time
	LastSequence   int
	Rating         *int
	Feedback       *string
	Hidden         bool
	HiddenAt       *time.Time
}

func (s *ChatSession) IsClosed() bool {
	return s.Status == "Closed"
}

// OwnedBy reports whether userId may act on this session. Anonymous sessions
// have no owner and are only reachable through the public widget endpoint.
func (s *ChatSession) OwnedBy(userId uuid.UUID) bool {
	return s.UserId != nil && *s.UserId == userId
}

// ChatMessage is an append-only message within a session. Sequence is a
// per-session monotonic counter assigned transactionally, so ordering never
// depends on wall-clock granularity.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Sequence      int
	CreatedAt     time.Time
	Hidden        bool
}
