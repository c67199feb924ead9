package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/constant"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/memory"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/events"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/flowise"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/nats"
)

type IChatService interface {
	StartSession(ctx context.Context, chatbotId uuid.UUID, userId *uuid.UUID) (*dto.StartSessionResponse, error)
	SendMessage(ctx context.Context, sessionId uuid.UUID, userId *uuid.UUID, text string) (*dto.SendMessageResponse, error)
	PublicChat(ctx context.Context, chatbotId uuid.UUID, req *dto.PublicChatRequest) (*dto.PublicChatResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) (*dto.SessionDetailResponse, error)
	ClearChat(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error
	EndChat(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error
	SubmitFeedback(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID, rating int, feedback string) error
	HideSession(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	flowiseClient  *flowise.Client
	lockRepository *memory.SessionLockRepository
	eventPublisher *nats.Publisher
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	flowiseClient *flowise.Client,
	lockRepository *memory.SessionLockRepository,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		flowiseClient:  flowiseClient,
		lockRepository: lockRepository,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (c *chatService) StartSession(ctx context.Context, chatbotId uuid.UUID, userId *uuid.UUID) (*dto.StartSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil || !chatbot.IsActive {
		return nil, serverutils.NewNotFound("chatbot not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	session := entity.ChatSession{
		Id:             uuid.New(),
		ChatbotId:      chatbotId,
		UserId:         userId,
		Status:         constant.ChatSessionStatusActive,
		StartedAt:      now,
		LastActivityAt: now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	welcome, err := c.seedWelcomeMessage(ctx, uow, session.Id, chatbot.Name)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.StartSessionResponse{
		SessionId: session.Id,
		Welcome:   welcome,
	}, nil
}

func (c *chatService) seedWelcomeMessage(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, chatbotName string) (string, error) {
	seq, err := uow.ChatSessionRepository().NextSequence(ctx, sessionId)
	if err != nil {
		return "", err
	}

	welcome := fmt.Sprintf(constant.WelcomeMessageFormat, chatbotName)
	msg := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleBot,
		Content:       welcome,
		Sequence:      seq,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &msg); err != nil {
		return "", err
	}
	return welcome, nil
}

// authorize loads a session and checks the caller may act on it. A nil
// userId marks the public widget path, which may only touch anonymous
// sessions.
func (c *chatService) authorize(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, userId *uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFound("session not found")
	}

	if userId == nil {
		if session.UserId != nil {
			return nil, serverutils.NewUnauthorized("session requires authentication")
		}
		return session, nil
	}
	if !session.OwnedBy(*userId) {
		return nil, serverutils.NewUnauthorized("session does not belong to you")
	}
	return session, nil
}

func (c *chatService) SendMessage(ctx context.Context, sessionId uuid.UUID, userId *uuid.UUID, text string) (*dto.SendMessageResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, serverutils.NewValidation("message must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.authorize(ctx, uow, sessionId, userId)
	if err != nil {
		return nil, err
	}
	if session.IsClosed() {
		return nil, serverutils.NewValidation("session is closed")
	}

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: session.ChatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, serverutils.NewNotFound("chatbot not found")
	}

	lock := c.lockRepository.Get(sessionId.String())
	lock.Lock()
	defer lock.Unlock()

	// The user message is committed before the gateway call so it survives
	// an upstream failure.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	seq, err := uow.ChatSessionRepository().NextSequence(ctx, sessionId)
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	userMsg := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleUser,
		Content:       text,
		Sequence:      seq,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Only the gateway round trip counts toward the reported latency.
	start := time.Now()
	reply, err := c.flowiseClient.GeneratePrediction(ctx, chatbot.FlowiseId, sessionId.String(), text)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		c.logger.Error("chat_service", "ai gateway call failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"chatbot_id": chatbot.Id.String(),
			"error":      err.Error(),
		})
		return nil, serverutils.NewUpstreamFailure("ai engine is unavailable", err)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	botSeq, err := uow.ChatSessionRepository().NextSequence(ctx, sessionId)
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	botMsg := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          constant.ChatMessageRoleBot,
		Content:       reply,
		Sequence:      botSeq,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &botMsg); err != nil {
		uow.Rollback()
		return nil, err
	}

	session.LastActivityAt = time.Now()
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendMessageResponse{
		Response:       reply,
		ResponseTimeMs: elapsed,
	}, nil
}

// PublicChat serves the embeddable widget: one call sends a message,
// creating an anonymous session on the fly when none is supplied.
func (c *chatService) PublicChat(ctx context.Context, chatbotId uuid.UUID, req *dto.PublicChatRequest) (*dto.PublicChatResponse, error) {
	sessionId := req.SessionId
	if sessionId == nil {
		started, err := c.StartSession(ctx, chatbotId, nil)
		if err != nil {
			return nil, err
		}
		sessionId = &started.SessionId
	}

	res, err := c.SendMessage(ctx, *sessionId, nil, req.Message)
	if err != nil {
		return nil, err
	}

	return &dto.PublicChatResponse{
		Response:       res.Response,
		SessionId:      *sessionId,
		ResponseTimeMs: res.ResponseTimeMs,
	}, nil
}

func (c *chatService) GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.NotHidden{},
		specification.OrderBy{Field: "last_activity_at", Desc: true},
		specification.Pagination{Limit: constant.HistoryPageSize},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionSummaryResponse, 0, len(sessions))
	for _, session := range sessions {
		chatbotName := ""
		chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: session.ChatbotId})
		if err != nil {
			return nil, err
		}
		if chatbot != nil {
			chatbotName = chatbot.Name
		}

		count, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id})
		if err != nil {
			return nil, err
		}

		lastMessage := ""
		last, err := uow.ChatMessageRepository().FindLast(ctx, session.Id)
		if err != nil {
			return nil, err
		}
		if last != nil {
			lastMessage = last.Content
		}

		result = append(result, &dto.SessionSummaryResponse{
			SessionId:    session.Id,
			ChatbotId:    session.ChatbotId,
			ChatbotName:  chatbotName,
			Status:       session.Status,
			StartedAt:    session.StartedAt,
			LastActivity: session.LastActivityAt,
			LastMessage:  lastMessage,
			MessageCount: count,
			Rating:       session.Rating,
			EndedAt:      session.EndedAt,
		})
	}
	return result, nil
}

func (c *chatService) GetSession(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) (*dto.SessionDetailResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.authorize(ctx, uow, sessionId, &userId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "sequence", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.SessionDetailResponse{
		SessionId: session.Id,
		ChatbotId: session.ChatbotId,
		Status:    session.Status,
		Messages:  make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.MessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			Sequence:  m.Sequence,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

// ClearChat wipes the transcript and reseeds the welcome message. Session
// identity, start time and status stay as they were.
func (c *chatService) ClearChat(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.authorize(ctx, uow, sessionId, &userId)
	if err != nil {
		return err
	}

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: session.ChatbotId})
	if err != nil {
		return err
	}
	chatbotName := "your assistant"
	if chatbot != nil {
		chatbotName = chatbot.Name
	}

	// Hold the session lock so an in-flight send cannot commit its reply
	// between the wipe and the reseed.
	lock := c.lockRepository.Get(sessionId.String())
	lock.Lock()
	defer lock.Unlock()

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().ResetSequence(ctx, sessionId); err != nil {
		return err
	}
	if _, err := c.seedWelcomeMessage(ctx, uow, sessionId, chatbotName); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *chatService) EndChat(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.authorize(ctx, uow, sessionId, &userId)
	if err != nil {
		return err
	}
	if session.IsClosed() {
		return nil
	}

	now := time.Now()
	session.Status = constant.ChatSessionStatusClosed
	session.EndedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	c.lockRepository.Delete(sessionId.String())

	if c.eventPublisher != nil {
		if err := c.eventPublisher.Publish(ctx, events.NewSessionClosedEvent(session.Id, session.ChatbotId)); err != nil {
			c.logger.Warn("chat_service", "failed to publish session closed event", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}
	return nil
}

func (c *chatService) SubmitFeedback(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID, rating int, feedback string) error {
	if rating < constant.FeedbackRatingMin || rating > constant.FeedbackRatingMax {
		return serverutils.NewValidation("rating must be between 1 and 5")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.authorize(ctx, uow, sessionId, &userId)
	if err != nil {
		return err
	}

	session.Rating = &rating
	if feedback != "" {
		session.Feedback = &feedback
	}
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	if c.eventPublisher != nil {
		if err := c.eventPublisher.Publish(ctx, events.NewFeedbackSubmittedEvent(session.Id, session.ChatbotId, rating, feedback)); err != nil {
			c.logger.Warn("chat_service", "failed to publish feedback event", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}
	return nil
}

func (c *chatService) HideSession(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.authorize(ctx, uow, sessionId, &userId)
	if err != nil {
		return err
	}

	now := time.Now()
	session.Hidden = true
	session.HiddenAt = &now
	return uow.ChatSessionRepository().Update(ctx, session)
}
