package mapper

import (
	"github.com/Gotppsn/TP-chatbot-sub000/internal/entity"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:             s.Id,
		ChatbotId:      s.ChatbotId,
		UserId:         s.UserId,
		Status:         s.Status,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		LastActivityAt: s.LastActivityAt,
		LastSequence:   s.LastSequence,
		Rating:         s.Rating,
		Feedback:       s.Feedback,
		Hidden:         s.Hidden,
		HiddenAt:       s.HiddenAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:             s.Id,
		ChatbotId:      s.ChatbotId,
		UserId:         s.UserId,
		Status:         s.Status,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		LastActivityAt: s.LastActivityAt,
		LastSequence:   s.LastSequence,
		Rating:         s.Rating,
		Feedback:       s.Feedback,
		Hidden:         s.Hidden,
		HiddenAt:       s.HiddenAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Sequence:      msg.Sequence,
		CreatedAt:     msg.CreatedAt,
		Hidden:        msg.Hidden,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Sequence:      msg.Sequence,
		CreatedAt:     msg.CreatedAt,
		Hidden:        msg.Hidden,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
