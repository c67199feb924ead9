package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// NextSequence increments and returns the session's message counter. Must
	// run inside the caller's transaction so concurrent senders serialize on
	// the row lock.
	NextSequence(ctx context.Context, sessionId uuid.UUID) (int, error)
	// ResetSequence zeroes the counter (used by ClearChat).
	ResetSequence(ctx context.Context, sessionId uuid.UUID) error
	DeleteByChatbotIds(ctx context.Context, chatbotIds []uuid.UUID) error
}
