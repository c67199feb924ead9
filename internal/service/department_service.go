package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/events"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/nats"
)

type IDepartmentService interface {
	GetAll(ctx context.Context) ([]*dto.DepartmentResponse, error)
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.CreateDepartmentResponse, error)
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, name string) error
}

type departmentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *nats.Publisher
	logger         logger.ILogger
}

func NewDepartmentService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IDepartmentService {
	return &departmentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (c *departmentService) GetAll(ctx context.Context) ([]*dto.DepartmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	departments, err := uow.DepartmentRepository().FindAll(ctx,
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		userCount, err := uow.UserRepository().Count(ctx, specification.ByDepartment{Department: department.Name})
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.DepartmentResponse{
			Id:          department.Id,
			Name:        department.Name,
			Description: department.Description,
			UserCount:   userCount,
			CreatedAt:   department.CreatedAt,
		})
	}
	return result, nil
}

func (c *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.CreateDepartmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("department already exists")
	}

	department := entity.Department{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := uow.DepartmentRepository().Create(ctx, &department); err != nil {
		return nil, err
	}
	return &dto.CreateDepartmentResponse{Id: department.Id}, nil
}

// Rename rewrites the department row and every user, chatbot and article
// tagged with the old name, all in one transaction.
func (c *departmentService) Rename(ctx context.Context, oldName, newName string) error {
	if oldName == newName {
		return nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	department, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: oldName})
	if err != nil {
		return err
	}
	if department == nil {
		return serverutils.NewNotFound("department not found")
	}

	clash, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: newName})
	if err != nil {
		return err
	}
	if clash != nil {
		return serverutils.NewConflict("a department with the new name already exists")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	department.Name = newName
	if err := uow.DepartmentRepository().Update(ctx, department); err != nil {
		return err
	}
	if err := uow.UserRepository().UpdateDepartmentBulk(ctx, oldName, newName); err != nil {
		return err
	}
	if err := uow.ChatbotRepository().UpdateDepartmentBulk(ctx, oldName, newName); err != nil {
		return err
	}
	if err := uow.ArticleRepository().UpdateDepartmentBulk(ctx, oldName, newName); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if c.eventPublisher != nil {
		if err := c.eventPublisher.Publish(ctx, events.NewDepartmentRenamedEvent(oldName, newName)); err != nil {
			c.logger.Warn("department_service", "failed to publish rename event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}

// Delete refuses while users still belong to the department, then removes
// its chatbots cascading to sessions and messages, and its articles.
func (c *departmentService) Delete(ctx context.Context, name string) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	department, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return err
	}
	if department == nil {
		return serverutils.NewNotFound("department not found")
	}

	userCount, err := uow.UserRepository().Count(ctx, specification.ByDepartment{Department: name})
	if err != nil {
		return err
	}
	if userCount > 0 {
		return serverutils.NewConflict("department still has members")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	chatbotIds, err := uow.ChatbotRepository().DeleteByDepartment(ctx, name)
	if err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().DeleteByChatbotIds(ctx, chatbotIds); err != nil {
		return err
	}
	if err := uow.ArticleRepository().DeleteByDepartment(ctx, name); err != nil {
		return err
	}
	if err := uow.DepartmentRepository().Delete(ctx, department.Id); err != nil {
		return err
	}

	return uow.Commit()
}
