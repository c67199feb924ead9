package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
)

// Renaming a department must retag every row that carries the old name,
// all inside one transaction.
func TestDepartmentRenamePropagates(t *testing.T) {
	uow := setupUow(t)
	ctx := context.Background()

	oldName := "rename-old-" + uuid.NewString()[:8]
	newName := "rename-new-" + uuid.NewString()[:8]

	dept := &entity.Department{Id: uuid.New(), Name: oldName, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, uow.DepartmentRepository().Create(ctx, dept))

	user := &entity.User{
		Id:         uuid.New(),
		Email:      "rename-" + uuid.NewString() + "@example.com",
		FullName:   "Rename Test User",
		Role:       entity.UserRoleUser,
		Status:     entity.UserStatusActive,
		Department: oldName,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	bot := &entity.Chatbot{
		Id:         uuid.New(),
		Name:       "Rename Test Bot",
		Department: oldName,
		FlowiseId:  "flow-" + uuid.NewString(),
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, uow.ChatbotRepository().Create(ctx, bot))

	defer func() {
		_ = uow.ChatbotRepository().Delete(ctx, bot.Id)
		_ = uow.UserRepository().Delete(ctx, user.Id)
		_ = uow.DepartmentRepository().Delete(ctx, dept.Id)
	}()

	require.NoError(t, uow.Begin(ctx))
	dept.Name = newName
	dept.UpdatedAt = time.Now()
	require.NoError(t, uow.DepartmentRepository().Update(ctx, dept))
	require.NoError(t, uow.UserRepository().UpdateDepartmentBulk(ctx, oldName, newName))
	require.NoError(t, uow.ChatbotRepository().UpdateDepartmentBulk(ctx, oldName, newName))
	require.NoError(t, uow.Commit())

	reloadedUser, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	require.NotNil(t, reloadedUser)
	assert.Equal(t, newName, reloadedUser.Department)

	reloadedBot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: bot.Id})
	require.NoError(t, err)
	require.NotNil(t, reloadedBot)
	assert.Equal(t, newName, reloadedBot.Department)

	orphans, err := uow.UserRepository().Count(ctx, specification.ByDepartment{Department: oldName})
	require.NoError(t, err)
	assert.Zero(t, orphans)
}
