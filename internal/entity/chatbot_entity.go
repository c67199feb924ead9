package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chatbot is a department-scoped conversational configuration bound to one
// Flowise chatflow.
type Chatbot struct {
	Id           uuid.UUID
	Name         string
	Department   string
	AiModel      string
	FlowiseId    string
	IsActive     bool
	SystemPrompt string
	CreatedBy    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
