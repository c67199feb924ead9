package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindLast returns the newest message of a session by sequence, or nil.
	FindLast(ctx context.Context, sessionId uuid.UUID) (*entity.ChatMessage, error)
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
}
