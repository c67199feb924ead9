package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/constant"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
)

func TestHasPermission(t *testing.T) {
	factory := setupFactory(t)
	svc := service.NewPermissionService(factory)
	uow := factory.NewUnitOfWork(context.Background())
	ctx := context.Background()

	admin := &entity.User{
		Id:        uuid.New(),
		Email:     "perm-admin-" + uuid.NewString() + "@example.com",
		FullName:  "Permission Test Admin",
		Role:      entity.UserRoleAdmin,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, admin))

	member := &entity.User{
		Id:        uuid.New(),
		Email:     "perm-member-" + uuid.NewString() + "@example.com",
		FullName:  "Permission Test Member",
		Role:      entity.UserRoleUser,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, member))

	defer func() {
		_ = uow.PermissionRepository().DeleteAllByUserId(ctx, member.Id)
		_ = uow.UserRepository().Delete(ctx, member.Id)
		_ = uow.UserRepository().Delete(ctx, admin.Id)
	}()

	t.Run("Admin Short-Circuits To True", func(t *testing.T) {
		for _, name := range constant.KnownPermissions() {
			ok, err := svc.HasPermission(ctx, admin.Id, name)
			require.NoError(t, err)
			assert.True(t, ok, name)
		}
	})

	t.Run("Default Deny Without Grant", func(t *testing.T) {
		ok, err := svc.HasPermission(ctx, member.Id, constant.PermissionManageSettings)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Grant Row Allows", func(t *testing.T) {
		require.NoError(t, svc.SetPermissions(ctx, &dto.SetPermissionsRequest{
			UserId:      member.Id,
			Permissions: []string{constant.PermissionManageSettings},
		}))

		ok, err := svc.HasPermission(ctx, member.Id, constant.PermissionManageSettings)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.HasPermission(ctx, member.Id, constant.PermissionManageChatbots)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unknown User Is Denied", func(t *testing.T) {
		ok, err := svc.HasPermission(ctx, uuid.New(), constant.PermissionManageSettings)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
