package dto

import "time"

type UpdateSettingsRequest struct {
	OrganizationName string  `json:"organization_name"`
	FlowiseEndpoint  string  `json:"flowise_endpoint" validate:"required"`
	FlowiseApiKey    string  `json:"flowise_api_key"`
	DefaultModel     string  `json:"default_model"`
	Temperature      float64 `json:"temperature" validate:"min=0,max=2"`
	MaxTokens        int     `json:"max_tokens" validate:"min=0"`
}

type SettingsResponse struct {
	OrganizationName string    `json:"organization_name"`
	FlowiseEndpoint  string    `json:"flowise_endpoint"`
	FlowiseApiKey    string    `json:"flowise_api_key"`
	DefaultModel     string    `json:"default_model"`
	Temperature      float64   `json:"temperature"`
	MaxTokens        int       `json:"max_tokens"`
	UpdatedAt        time.Time `json:"updated_at"`
}
