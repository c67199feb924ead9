package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/config"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/dto"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/serverutils"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/repository/unitofwork"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/flowise"
)

type ISettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	// Resolve feeds the gateway client with the current endpoint and key.
	Resolve(ctx context.Context) (flowise.Settings, error)
}

type settingsService struct {
	uowFactory    unitofwork.RepositoryFactory
	cfg           *config.Config
	flowiseClient *flowise.Client
	logger        logger.ILogger
}

func NewSettingsService(
	uowFactory unitofwork.RepositoryFactory,
	cfg *config.Config,
	log logger.ILogger,
) *settingsService {
	return &settingsService{
		uowFactory: uowFactory,
		cfg:        cfg,
		logger:     log,
	}
}

// SetProbeClient breaks the settings/gateway construction cycle: the client
// needs a resolver and the service needs the client for update probing.
func (c *settingsService) SetProbeClient(client *flowise.Client) {
	c.flowiseClient = client
}

// load returns the active settings row, creating one lazily from static
// config fallbacks on first read.
func (c *settingsService) load(ctx context.Context) (*entity.SystemSettings, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.SettingsRepository().FindFirst(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	now := time.Now()
	settings = &entity.SystemSettings{
		Id:               uuid.New(),
		OrganizationName: "Helpdesk Portal",
		FlowiseEndpoint:  c.cfg.Ai.FlowiseEndpoint,
		FlowiseApiKey:    c.cfg.Ai.FlowiseApiKey,
		DefaultModel:     c.cfg.Ai.DefaultModel,
		Temperature:      c.cfg.Ai.Temperature,
		MaxTokens:        c.cfg.Ai.MaxTokens,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uow.SettingsRepository().Create(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func toSettingsResponse(s *entity.SystemSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		OrganizationName: s.OrganizationName,
		FlowiseEndpoint:  s.FlowiseEndpoint,
		FlowiseApiKey:    s.FlowiseApiKey,
		DefaultModel:     s.DefaultModel,
		Temperature:      s.Temperature,
		MaxTokens:        s.MaxTokens,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (c *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// Update is verify-before-swap: the new endpoint must answer a health probe
// before the row changes, otherwise the previous settings stay active.
func (c *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	if c.flowiseClient != nil && req.FlowiseEndpoint != settings.FlowiseEndpoint {
		if err := c.flowiseClient.HealthAt(ctx, req.FlowiseEndpoint); err != nil {
			c.logger.Warn("settings_service", "endpoint probe failed, keeping previous settings", map[string]interface{}{
				"endpoint": req.FlowiseEndpoint,
				"error":    err.Error(),
			})
			return nil, serverutils.NewValidation("new endpoint did not respond to a health probe")
		}
	}

	if req.OrganizationName != "" {
		settings.OrganizationName = req.OrganizationName
	}
	settings.FlowiseEndpoint = flowise.NormalizeBaseURL(req.FlowiseEndpoint)
	settings.FlowiseApiKey = req.FlowiseApiKey
	if req.DefaultModel != "" {
		settings.DefaultModel = req.DefaultModel
	}
	settings.Temperature = req.Temperature
	if req.MaxTokens > 0 {
		settings.MaxTokens = req.MaxTokens
	}
	settings.UpdatedAt = time.Now()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SettingsRepository().Update(ctx, settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (c *settingsService) Resolve(ctx context.Context) (flowise.Settings, error) {
	settings, err := c.load(ctx)
	if err != nil {
		return flowise.Settings{}, err
	}
	return flowise.Settings{
		Endpoint: settings.FlowiseEndpoint,
		ApiKey:   settings.FlowiseApiKey,
	}, nil
}
