package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/config"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/mailer"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/specification"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/events"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/nats"
)

const tokenTTL = 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	cfg            *config.Config
	emailService   mailer.IEmailService
	eventPublisher *nats.Publisher
	logger         logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	cfg *config.Config,
	emailService mailer.IEmailService,
	eventPublisher *nats.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		cfg:            cfg,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (c *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("email already registered")
	}

	department, err := uow.DepartmentRepository().FindOne(ctx, specification.ByName{Name: req.Department})
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, serverutils.NewValidation("unknown department")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	now := time.Now()
	user := entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusPending,
		Department:   req.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	if c.eventPublisher != nil {
		if err := c.eventPublisher.Publish(ctx, events.NewUserRegisteredEvent(user.Id, user.Email, user.Department)); err != nil {
			c.logger.Warn("auth_service", "failed to publish registration event", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	return &dto.RegisterResponse{Id: user.Id}, nil
}

func (c *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, serverutils.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.NewUnauthorized("invalid credentials")
	}
	if user.Status == entity.UserStatusBlocked {
		return nil, serverutils.NewForbidden("account is blocked")
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.App.JwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User: dto.UserInfo{
			Id:         user.Id,
			Email:      user.Email,
			FullName:   user.FullName,
			Role:       string(user.Role),
			Department: user.Department,
		},
	}, nil
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint cannot be used to enumerate accounts.
func (c *authService) ForgotPassword(ctx context.Context, email string) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}

	token := entity.PasswordResetToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateResetToken(ctx, &token); err != nil {
		return err
	}

	if err := c.emailService.SendResetToken(user.Email, token.Token); err != nil {
		c.logger.Error("auth_service", "failed to send reset email", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err.Error(),
		})
	}
	return nil
}

func (c *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	token, err := uow.UserRepository().FindResetToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if token == nil || token.Used || time.Now().After(token.ExpiresAt) {
		return serverutils.NewValidation("invalid or expired token")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: token.UserId})
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.NewNotFound("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user.PasswordHash = &hashStr
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}
	if err := uow.UserRepository().MarkResetTokenUsed(ctx, token.Id); err != nil {
		return err
	}

	return uow.Commit()
}
