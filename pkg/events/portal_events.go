package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventUserRegistered    = "USER_REGISTERED"
	EventFeedbackSubmitted = "FEEDBACK_SUBMITTED"
	EventSessionClosed     = "SESSION_CLOSED"
	EventDepartmentRenamed = "DEPARTMENT_RENAMED"
	EventChatbotSynced     = "CHATBOT_SYNCED"
)

func NewUserRegisteredEvent(userId uuid.UUID, email, department string) Event {
	return BaseEvent{
		Type: EventUserRegistered,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"email":      email,
			"department": department,
		},
		OccurredAt: time.Now(),
	}
}

func NewFeedbackSubmittedEvent(sessionId, chatbotId uuid.UUID, rating int, feedback string) Event {
	return BaseEvent{
		Type: EventFeedbackSubmitted,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"chatbot_id": chatbotId.String(),
			"rating":     rating,
			"feedback":   feedback,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionClosedEvent(sessionId, chatbotId uuid.UUID) Event {
	return BaseEvent{
		Type: EventSessionClosed,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"chatbot_id": chatbotId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewDepartmentRenamedEvent(oldName, newName string) Event {
	return BaseEvent{
		Type: EventDepartmentRenamed,
		Data: map[string]interface{}{
			"old_name": oldName,
			"new_name": newName,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatbotSyncedEvent(created, updated int) Event {
	return BaseEvent{
		Type: EventChatbotSynced,
		Data: map[string]interface{}{
			"created": created,
			"updated": updated,
		},
		OccurredAt: time.Now(),
	}
}
