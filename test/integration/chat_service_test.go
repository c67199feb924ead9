package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/memory"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/service"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/flowise"
)

type chatServiceEnv struct {
	svc   service.IChatService
	uow   unitofwork.UnitOfWork
	locks *memory.SessionLockRepository
}

// setupChatService wires the chat orchestrator against the real database and
// a stub AI gateway that always answers with gatewayReply.
func setupChatService(t *testing.T, gatewayReply string) *chatServiceEnv {
	t.Helper()

	factory := setupFactory(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": gatewayReply})
	}))
	t.Cleanup(srv.Close)

	client := flowise.NewClient(func(ctx context.Context) (flowise.Settings, error) {
		return flowise.Settings{Endpoint: srv.URL}, nil
	})

	locks := memory.NewSessionLockRepository()
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "chat-test.log"))

	return &chatServiceEnv{
		svc:   service.NewChatService(factory, client, locks, nil, log),
		uow:   factory.NewUnitOfWork(context.Background()),
		locks: locks,
	}
}

func createTestBot(t *testing.T, uow unitofwork.UnitOfWork) *entity.Chatbot {
	t.Helper()
	ctx := context.Background()

	deptName := "chat-svc-" + uuid.NewString()[:8]
	dept := &entity.Department{Id: uuid.New(), Name: deptName, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, uow.DepartmentRepository().Create(ctx, dept))

	bot := &entity.Chatbot{
		Id:         uuid.New(),
		Name:       "Helpdesk Bot",
		Department: deptName,
		FlowiseId:  "flow-" + uuid.NewString(),
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, uow.ChatbotRepository().Create(ctx, bot))

	t.Cleanup(func() {
		_ = uow.ChatbotRepository().Delete(ctx, bot.Id)
		_ = uow.DepartmentRepository().Delete(ctx, dept.Id)
	})
	return bot
}

func createTestUser(t *testing.T, uow unitofwork.UnitOfWork, department string) *entity.User {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{
		Id:         uuid.New(),
		Email:      "chat-svc-" + uuid.NewString() + "@example.com",
		FullName:   "Chat Service Test User",
		Role:       entity.UserRoleUser,
		Status:     entity.UserStatusActive,
		Department: department,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	t.Cleanup(func() {
		_ = uow.UserRepository().Delete(ctx, user.Id)
	})
	return user
}

func cleanupSession(t *testing.T, uow unitofwork.UnitOfWork, sessionId uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		ctx := context.Background()
		_ = uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId)
		_ = uow.ChatSessionRepository().Delete(ctx, sessionId)
	})
}

func TestStartSessionUnknownChatbotCreatesNothing(t *testing.T) {
	env := setupChatService(t, "unused")
	ctx := context.Background()

	missing := uuid.New()
	_, err := env.svc.StartSession(ctx, missing, nil)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	count, err := env.uow.ChatSessionRepository().Count(ctx, specification.ByChatbotID{ChatbotID: missing})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSendMessageRequiresOwnership(t *testing.T) {
	env := setupChatService(t, "unused")
	ctx := context.Background()

	bot := createTestBot(t, env.uow)
	owner := createTestUser(t, env.uow, bot.Department)

	started, err := env.svc.StartSession(ctx, bot.Id, &owner.Id)
	require.NoError(t, err)
	cleanupSession(t, env.uow, started.SessionId)

	stranger := uuid.New()
	_, err = env.svc.SendMessage(ctx, started.SessionId, &stranger, "hello")

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)

	// The widget path carries no user and may not touch owned sessions.
	_, err = env.svc.SendMessage(ctx, started.SessionId, nil, "hello")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

func TestClearChatLeavesOnlyWelcome(t *testing.T) {
	env := setupChatService(t, "the answer")
	ctx := context.Background()

	bot := createTestBot(t, env.uow)
	owner := createTestUser(t, env.uow, bot.Department)

	started, err := env.svc.StartSession(ctx, bot.Id, &owner.Id)
	require.NoError(t, err)
	cleanupSession(t, env.uow, started.SessionId)

	_, err = env.svc.SendMessage(ctx, started.SessionId, &owner.Id, "what are your hours?")
	require.NoError(t, err)

	require.NoError(t, env.svc.ClearChat(ctx, started.SessionId, owner.Id))

	messages, err := env.uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: started.SessionId},
	)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "bot", messages[0].Role)
	assert.Equal(t, 1, messages[0].Sequence)
	assert.Contains(t, messages[0].Content, bot.Name)
}

func TestClearChatWaitsForSessionLock(t *testing.T) {
	env := setupChatService(t, "unused")
	ctx := context.Background()

	bot := createTestBot(t, env.uow)
	owner := createTestUser(t, env.uow, bot.Department)

	started, err := env.svc.StartSession(ctx, bot.Id, &owner.Id)
	require.NoError(t, err)
	cleanupSession(t, env.uow, started.SessionId)

	lock := env.locks.Get(started.SessionId.String())
	lock.Lock()

	done := make(chan error, 1)
	go func() {
		done <- env.svc.ClearChat(ctx, started.SessionId, owner.Id)
	}()

	select {
	case <-done:
		t.Fatal("clear ran while the session lock was held")
	case <-time.After(200 * time.Millisecond):
	}

	lock.Unlock()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("clear never finished after the lock was released")
	}
}

func TestEndChatClosesSession(t *testing.T) {
	env := setupChatService(t, "unused")
	ctx := context.Background()

	bot := createTestBot(t, env.uow)
	owner := createTestUser(t, env.uow, bot.Department)

	started, err := env.svc.StartSession(ctx, bot.Id, &owner.Id)
	require.NoError(t, err)
	cleanupSession(t, env.uow, started.SessionId)

	require.NoError(t, env.svc.EndChat(ctx, started.SessionId, owner.Id))

	loaded, err := env.uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: started.SessionId})
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Closed", loaded.Status)
	require.NotNil(t, loaded.EndedAt)
	assert.False(t, loaded.EndedAt.Before(loaded.StartedAt))

	// Ending twice is a no-op.
	require.NoError(t, env.svc.EndChat(ctx, started.SessionId, owner.Id))

	_, err = env.svc.SendMessage(ctx, started.SessionId, &owner.Id, "hello?")
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestConversationFlow(t *testing.T) {
	env := setupChatService(t, "We are open 9 to 5.")
	ctx := context.Background()

	bot := createTestBot(t, env.uow)
	owner := createTestUser(t, env.uow, bot.Department)

	started, err := env.svc.StartSession(ctx, bot.Id, &owner.Id)
	require.NoError(t, err)
	cleanupSession(t, env.uow, started.SessionId)
	assert.Contains(t, started.Welcome, bot.Name)

	res, err := env.svc.SendMessage(ctx, started.SessionId, &owner.Id, "what are your hours?")
	require.NoError(t, err)
	assert.Equal(t, "We are open 9 to 5.", res.Response)
	assert.GreaterOrEqual(t, res.ResponseTimeMs, int64(0))

	detail, err := env.svc.GetSession(ctx, started.SessionId, owner.Id)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 3)
	assert.Equal(t, "bot", detail.Messages[0].Role)
	assert.Equal(t, "user", detail.Messages[1].Role)
	assert.Equal(t, "bot", detail.Messages[2].Role)
	for i, msg := range detail.Messages {
		assert.Equal(t, i+1, msg.Sequence)
	}

	history, err := env.svc.GetHistory(ctx, owner.Id)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, started.SessionId, history[0].SessionId)
	assert.Equal(t, int64(3), history[0].MessageCount)
	assert.Equal(t, "We are open 9 to 5.", history[0].LastMessage)
}
