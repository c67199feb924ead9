package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

type ChatbotRepository interface {
	Create(ctx context.Context, chatbot *entity.Chatbot) error
	Update(ctx context.Context, chatbot *entity.Chatbot) error
	// Delete removes the chatbot row permanently (admin hard delete).
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chatbot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chatbot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	FindByFlowiseId(ctx context.Context, flowiseId string) (*entity.Chatbot, error)
	UpdateDepartmentBulk(ctx context.Context, oldName, newName string) error
	DeleteByDepartment(ctx context.Context, department string) ([]uuid.UUID, error)
}
