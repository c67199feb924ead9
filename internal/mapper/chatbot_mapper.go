package mapper

import (
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
)

type ChatbotMapper struct{}

func NewChatbotMapper() *ChatbotMapper {
	return &ChatbotMapper{}
}

func (m *ChatbotMapper) ToEntity(c *model.Chatbot) *entity.Chatbot {
	if c == nil {
		return nil
	}

	return &entity.Chatbot{
		Id:           c.Id,
		Name:         c.Name,
		Department:   c.Department,
		AiModel:      c.AiModel,
		FlowiseId:    c.FlowiseId,
		IsActive:     c.IsActive,
		SystemPrompt: c.SystemPrompt,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *ChatbotMapper) ToModel(c *entity.Chatbot) *model.Chatbot {
	if c == nil {
		return nil
	}

	return &model.Chatbot{
		Id:           c.Id,
		Name:         c.Name,
		Department:   c.Department,
		AiModel:      c.AiModel,
		FlowiseId:    c.FlowiseId,
		IsActive:     c.IsActive,
		SystemPrompt: c.SystemPrompt,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *ChatbotMapper) ToEntities(models []*model.Chatbot) []*entity.Chatbot {
	entities := make([]*entity.Chatbot, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
