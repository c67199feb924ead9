package mapper

import (
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
)

type SettingsMapper struct{}

func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

func (m *SettingsMapper) ToEntity(s *model.SystemSettings) *entity.SystemSettings {
	if s == nil {
		return nil
	}

	return &entity.SystemSettings{
		Id:               s.Id,
		OrganizationName: s.OrganizationName,
		FlowiseEndpoint:  s.FlowiseEndpoint,
		FlowiseApiKey:    s.FlowiseApiKey,
		DefaultModel:     s.DefaultModel,
		Temperature:      s.Temperature,
		MaxTokens:        s.MaxTokens,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *SettingsMapper) ToModel(s *entity.SystemSettings) *model.SystemSettings {
	if s == nil {
		return nil
	}

	return &model.SystemSettings{
		Id:               s.Id,
		OrganizationName: s.OrganizationName,
		FlowiseEndpoint:  s.FlowiseEndpoint,
		FlowiseApiKey:    s.FlowiseApiKey,
		DefaultModel:     s.DefaultModel,
		Temperature:      s.Temperature,
		MaxTokens:        s.MaxTokens,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
