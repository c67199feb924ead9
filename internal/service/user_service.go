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

type IUserService interface {
	Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	GetAll(ctx context.Context, department string) ([]*dto.UserProfileResponse, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func toUserProfileResponse(u *entity.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		Id:         u.Id,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		Status:     string(u.Status),
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}

func (c *userService) Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFound("user not found")
	}
	return toUserProfileResponse(user), nil
}

func (c *userService) GetAll(ctx context.Context, department string) ([]*dto.UserProfileResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if department != "" {
		specs = append(specs, specification.ByDepartment{Department: department})
	}

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserProfileResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserProfileResponse(user))
	}
	return result, nil
}

func (c *userService) Update(ctx context.Context, req *dto.UpdateUserRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.NewNotFound("user not found")
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		user.Role = entity.UserRole(req.Role)
	}
	if req.Status != "" {
		user.Status = entity.UserStatus(req.Status)
	}
	if req.Department != "" {
		department, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: req.Department})
		if err != nil {
			return err
		}
		if department == nil {
			return serverutils.NewValidation("unknown department")
		}
		user.Department = req.Department
	}
	user.UpdatedAt = time.Now()

	return uow.UserRepository().Update(ctx, user)
}
