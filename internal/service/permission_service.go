package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
)

type IPermissionService interface {
	HasPermission(ctx context.Context, userId uuid.UUID, name string) (bool, error)
	GetPermissions(ctx context.Context, userId uuid.UUID) (*dto.PermissionsResponse, error)
	SetPermissions(ctx context.Context, req *dto.SetPermissionsRequest) error
}

type permissionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPermissionService(uowFactory unitofwork.RepositoryFactory) IPermissionService {
	return &permissionService{
		uowFactory: uowFactory,
	}
}

// HasPermission is default-deny: admins short-circuit to true, everyone else
// needs an explicit grant row.
func (c *permissionService) HasPermission(ctx context.Context, userId uuid.UUID, name string) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	if user.IsAdmin() {
		return true, nil
	}

	grant, err := uow.PermissionRepository().FindGrant(ctx, userId, name)
	if err != nil {
		return false, err
	}
	return grant != nil && grant.Granted, nil
}

func (c *permissionService) GetPermissions(ctx context.Context, userId uuid.UUID) (*dto.PermissionsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	grants, err := uow.PermissionRepository().FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(grants))
	for _, grant := range grants {
		if grant.Granted {
			names = append(names, grant.Name)
		}
	}
	return &dto.PermissionsResponse{
		UserId:      userId,
		Permissions: names,
	}, nil
}

// SetPermissions replaces the user's whole grant set in one transaction.
func (c *permissionService) SetPermissions(ctx context.Context, req *dto.SetPermissionsRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.NewNotFound("user not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PermissionRepository().DeleteAllByUserId(ctx, req.UserId); err != nil {
		return err
	}

	grants := make([]*entity.UserPermission, 0, len(req.Permissions))
	for _, name := range req.Permissions {
		grants = append(grants, &entity.UserPermission{
			Id:        uuid.New(),
			UserId:    req.UserId,
			Name:      name,
			Granted:   true,
			CreatedAt: time.Now(),
		})
	}
	if err := uow.PermissionRepository().CreateBulk(ctx, grants); err != nil {
		return err
	}

	return uow.Commit()
}
