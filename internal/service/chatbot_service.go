package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/events"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/flowise"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/nats"
)

type IChatbotService interface {
	GetAll(ctx context.Context, department string) ([]*dto.ChatbotResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ChatbotResponse, error)
	Create(ctx context.Context, createdBy uuid.UUID, req *dto.CreateChatbotRequest) (*dto.CreateChatbotResponse, error)
	Update(ctx context.Context, req *dto.UpdateChatbotRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListChatflows(ctx context.Context) ([]*dto.ChatflowResponse, error)
	SyncFromFlowise(ctx context.Context, department string, createdBy uuid.UUID) (*dto.SyncChatbotsResponse, error)
}

type chatbotService struct {
	uowFactory     unitofwork.RepositoryFactory
	flowiseClient  *flowise.Client
	eventPublisher *nats.Publisher
	logger         logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	flowiseClient *flowise.Client,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:     uowFactory,
		flowiseClient:  flowiseClient,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func toChatbotResponse(c *entity.Chatbot) *dto.ChatbotResponse {
	return &dto.ChatbotResponse{
		Id:           c.Id,
		Name:         c.Name,
		Department:   c.Department,
		AiModel:      c.AiModel,
		FlowiseId:    c.FlowiseId,
		IsActive:     c.IsActive,
		SystemPrompt: c.SystemPrompt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (c *chatbotService) GetAll(ctx context.Context, department string) ([]*dto.ChatbotResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if department != "" {
		specs = append(specs, specification.ByDepartment{Department: department})
	}

	chatbots, err := uow.ChatbotRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatbotResponse, 0, len(chatbots))
	for _, chatbot := range chatbots {
		result = append(result, toChatbotResponse(chatbot))
	}
	return result, nil
}

func (c *chatbotService) Show(ctx context.Context, id uuid.UUID) (*dto.ChatbotResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, serverutils.NewNotFound("chatbot not found")
	}
	return toChatbotResponse(chatbot), nil
}

func (c *chatbotService) Create(ctx context.Context, createdBy uuid.UUID, req *dto.CreateChatbotRequest) (*dto.CreateChatbotResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	department, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: req.Department})
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, serverutils.NewValidation(fmt.Sprintf("department %q does not exist", req.Department))
	}

	existing, err := uow.ChatbotRepository().FindByFlowiseId(ctx, req.FlowiseId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("a chatbot for this chatflow already exists")
	}

	now := time.Now()
	chatbot := entity.Chatbot{
		Id:           uuid.New(),
		Name:         req.Name,
		Department:   req.Department,
		AiModel:      req.AiModel,
		FlowiseId:    req.FlowiseId,
		IsActive:     true,
		SystemPrompt: req.SystemPrompt,
		CreatedBy:    &createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.ChatbotRepository().Create(ctx, &chatbot); err != nil {
		return nil, err
	}

	return &dto.CreateChatbotResponse{Id: chatbot.Id}, nil
}

func (c *chatbotService) Update(ctx context.Context, req *dto.UpdateChatbotRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if chatbot == nil {
		return serverutils.NewNotFound("chatbot not found")
	}

	department, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: req.Department})
	if err != nil {
		return err
	}
	if department == nil {
		return serverutils.NewValidation(fmt.Sprintf("department %q does not exist", req.Department))
	}

	chatbot.Name = req.Name
	chatbot.Department = req.Department
	chatbot.AiModel = req.AiModel
	chatbot.FlowiseId = req.FlowiseId
	chatbot.SystemPrompt = req.SystemPrompt
	if req.IsActive != nil {
		chatbot.IsActive = *req.IsActive
	}
	chatbot.UpdatedAt = time.Now()

	return uow.ChatbotRepository().Update(ctx, chatbot)
}

// Delete removes a chatbot together with its sessions and messages.
func (c *chatbotService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if chatbot == nil {
		return serverutils.NewNotFound("chatbot not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().DeleteByChatbotIds(ctx, []uuid.UUID{id}); err != nil {
		return err
	}
	if err := uow.ChatbotRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *chatbotService) ListChatflows(ctx context.Context) ([]*dto.ChatflowResponse, error) {
	flows, err := c.flowiseClient.ListChatflows(ctx)
	if err != nil {
		return nil, serverutils.NewUpstreamFailure("could not list chatflows", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	result := make([]*dto.ChatflowResponse, 0, len(flows))
	for _, flow := range flows {
		existing, err := uow.ChatbotRepository().FindByFlowiseId(ctx, flow.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.ChatflowResponse{
			Id:       flow.ID,
			Name:     flow.Name,
			Deployed: flow.Deployed,
			Category: flow.Category,
			Imported: existing != nil,
		})
	}
	return result, nil
}

// SyncFromFlowise imports remote chatflows as chatbot rows in the given
// department. Known flows get their name refreshed, unknown ones become new
// inactive chatbots awaiting admin review.
func (c *chatbotService) SyncFromFlowise(ctx context.Context, department string, createdBy uuid.UUID) (*dto.SyncChatbotsResponse, error) {
	flows, err := c.flowiseClient.ListChatflows(ctx)
	if err != nil {
		return nil, serverutils.NewUpstreamFailure("could not list chatflows", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	dep, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: department})
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, serverutils.NewValidation(fmt.Sprintf("department %q does not exist", department))
	}

	created, updated := 0, 0
	for _, flow := range flows {
		existing, err := uow.ChatbotRepository().FindByFlowiseId(ctx, flow.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.Name != flow.Name {
				existing.Name = flow.Name
				existing.UpdatedAt = time.Now()
				if err := uow.ChatbotRepository().Update(ctx, existing); err != nil {
					return nil, err
				}
				updated++
			}
			continue
		}

		now := time.Now()
		chatbot := entity.Chatbot{
			Id:         uuid.New(),
			Name:       flow.Name,
			Department: department,
			FlowiseId:  flow.ID,
			IsActive:   false,
			CreatedBy:  &createdBy,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uow.ChatbotRepository().Create(ctx, &chatbot); err != nil {
			return nil, err
		}
		created++
	}

	c.logger.Info("chatbot_service", "chatflow sync finished", map[string]interface{}{
		"created": created,
		"updated": updated,
	})

	if c.eventPublisher != nil && (created > 0 || updated > 0) {
		if err := c.eventPublisher.Publish(ctx, events.NewChatbotSyncedEvent(created, updated)); err != nil {
			c.logger.Warn("chatbot_service", "failed to publish sync event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.SyncChatbotsResponse{Created: created, Updated: updated}, nil
}
