package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	Update(ctx context.Context, department *entity.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Department, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Department, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
