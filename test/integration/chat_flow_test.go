package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/database"
)

func setupFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	return unitofwork.NewRepositoryFactory(gormDB)
}

func setupUow(t *testing.T) unitofwork.UnitOfWork {
	t.Helper()
	return setupFactory(t).NewUnitOfWork(context.Background())
}

func TestChatSessionSequence(t *testing.T) {
	uow := setupUow(t)
	ctx := context.Background()

	deptName := "it-test-" + uuid.NewString()[:8]
	dept := &entity.Department{
		Id:        uuid.New(),
		Name:      deptName,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, uow.DepartmentRepository().Create(ctx, dept))

	bot := &entity.Chatbot{
		Id:         uuid.New(),
		Name:       "Sequence Test Bot",
		Department: deptName,
		FlowiseId:  "flow-" + uuid.NewString(),
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, uow.ChatbotRepository().Create(ctx, bot))

	session := &entity.ChatSession{
		Id:             uuid.New(),
		ChatbotId:      bot.Id,
		Status:         "Active",
		StartedAt:      time.Now(),
		LastActivityAt: time.Now(),
	}
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))

	defer func() {
		_ = uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id)
		_ = uow.ChatSessionRepository().Delete(ctx, session.Id)
		_ = uow.ChatbotRepository().Delete(ctx, bot.Id)
		_ = uow.DepartmentRepository().Delete(ctx, dept.Id)
	}()

	t.Run("Sequence Is Monotonic", func(t *testing.T) {
		for want := 1; want <= 3; want++ {
			seq, err := uow.ChatSessionRepository().NextSequence(ctx, session.Id)
			require.NoError(t, err)
			assert.Equal(t, want, seq)

			msg := &entity.ChatMessage{
				Id:            uuid.New(),
				ChatSessionId: session.Id,
				Role:          "user",
				Content:       "message",
				Sequence:      seq,
				CreatedAt:     time.Now(),
			}
			require.NoError(t, uow.ChatMessageRepository().Create(ctx, msg))
		}

		last, err := uow.ChatMessageRepository().FindLast(ctx, session.Id)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, 3, last.Sequence)
	})

	t.Run("Messages Ordered By Sequence", func(t *testing.T) {
		messages, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
			specification.OrderBy{Field: "sequence"},
		)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		for i, msg := range messages {
			assert.Equal(t, i+1, msg.Sequence)
		}
	})

	t.Run("Reset Restarts Numbering", func(t *testing.T) {
		require.NoError(t, uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id))
		require.NoError(t, uow.ChatSessionRepository().ResetSequence(ctx, session.Id))

		seq, err := uow.ChatSessionRepository().NextSequence(ctx, session.Id)
		require.NoError(t, err)
		assert.Equal(t, 1, seq)
	})
}

func TestAnonymousSessionHasNoOwner(t *testing.T) {
	uow := setupUow(t)
	ctx := context.Background()

	deptName := "widget-test-" + uuid.NewString()[:8]
	dept := &entity.Department{Id: uuid.New(), Name: deptName, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, uow.DepartmentRepository().Create(ctx, dept))

	bot := &entity.Chatbot{
		Id:         uuid.New(),
		Name:       "Widget Bot",
		Department: deptName,
		FlowiseId:  "flow-" + uuid.NewString(),
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, uow.ChatbotRepository().Create(ctx, bot))

	session := &entity.ChatSession{
		Id:             uuid.New(),
		ChatbotId:      bot.Id,
		UserId:         nil,
		Status:         "Active",
		StartedAt:      time.Now(),
		LastActivityAt: time.Now(),
	}
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))

	defer func() {
		_ = uow.ChatSessionRepository().Delete(ctx, session.Id)
		_ = uow.ChatbotRepository().Delete(ctx, bot.Id)
		_ = uow.DepartmentRepository().Delete(ctx, dept.Id)
	}()

	loaded, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Nil(t, loaded.UserId)
	assert.False(t, loaded.OwnedBy(uuid.New()))
}
