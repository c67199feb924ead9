package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatbotRequest struct {
	Name         string `json:"name" validate:"required"`
	Department   string `json:"department" validate:"required"`
	AiModel      string `json:"ai_model"`
	FlowiseId    string `json:"flowise_id" validate:"required"`
	SystemPrompt string `json:"system_prompt"`
}

type CreateChatbotResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateChatbotRequest struct {
	Id           uuid.UUID
	Name         string `json:"name" validate:"required"`
	Department   string `json:"department" validate:"required"`
	AiModel      string `json:"ai_model"`
	FlowiseId    string `json:"flowise_id" validate:"required"`
	IsActive     *bool  `json:"is_active"`
	SystemPrompt string `json:"system_prompt"`
}

type ChatbotResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Department   string    `json:"department"`
	AiModel      string    `json:"ai_model"`
	FlowiseId    string    `json:"flowise_id"`
	IsActive     bool      `json:"is_active"`
	SystemPrompt string    `json:"system_prompt"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ChatflowResponse struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Deployed bool   `json:"deployed"`
	Category string `json:"category"`
	Imported bool   `json:"imported"`
}

type SyncChatbotsResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
