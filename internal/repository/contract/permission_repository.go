package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
)

type PermissionRepository interface {
	CreateBulk(ctx context.Context, grants []*entity.UserPermission) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*entity.UserPermission, error)
	// FindGrant returns nil when no explicit grant row exists (default deny).
	FindGrant(ctx context.Context, userId uuid.UUID, name string) (*entity.UserPermission, error)
}
