package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	ChatbotId uuid.UUID `json:"chatbot_id" validate:"required"`
}

type StartSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Welcome   string    `json:"welcome"`
}

type SendMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
}

type SendMessageResponse struct {
	Response       string `json:"response"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

// PublicChatRequest is the widget-facing payload; the session is created on
// the fly when no id is supplied.
type PublicChatRequest struct {
	Message   string     `json:"message" validate:"required"`
	SessionId *uuid.UUID `json:"sessionId,omitempty"`
}

type PublicChatResponse struct {
	Response       string    `json:"response"`
	SessionId      uuid.UUID `json:"sessionId"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
}

type SessionSummaryResponse struct {
	SessionId    uuid.UUID  `json:"session_id"`
	ChatbotId    uuid.UUID  `json:"chatbot_id"`
	ChatbotName  string     `json:"chatbot_name"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	LastActivity time.Time  `json:"last_activity"`
	LastMessage  string     `json:"last_message"`
	MessageCount int64      `json:"message_count"`
	Rating       *int       `json:"rating,omitempty"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionDetailResponse struct {
	SessionId uuid.UUID         `json:"session_id"`
	ChatbotId uuid.UUID         `json:"chatbot_id"`
	Status    string            `json:"status"`
	Messages  []MessageResponse `json:"messages"`
}

type SubmitFeedbackRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Feedback  string    `json:"feedback"`
}
