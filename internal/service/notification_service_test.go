package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/events"
)

func TestBuildNotificationTemplate(t *testing.T) {
	s := &NotificationService{}

	config := &model.NotificationType{
		Code:        "DEPARTMENT_RENAMED",
		DisplayName: "Department Renamed",
		Template:    "Department {old_name} is now {new_name}",
	}
	evt := events.BaseEvent{
		Type: "DEPARTMENT_RENAMED",
		Data: map[string]interface{}{
			"old_name": "IT",
			"new_name": "Technology",
		},
		OccurredAt: time.Now(),
	}

	notif := s.buildNotification(uuid.New(), config, evt)

	assert.Equal(t, "Department IT is now Technology", notif.Message)
	assert.Equal(t, "Department Renamed", notif.Title)
	assert.Equal(t, "DEPARTMENT_RENAMED", notif.TypeCode)
	assert.False(t, notif.IsRead)
}

func TestBuildNotificationEntityMetadata(t *testing.T) {
	s := &NotificationService{}

	actorID := uuid.New()
	sessionID := uuid.New()

	config := &model.NotificationType{
		Code:        "SESSION_CLOSED",
		DisplayName: "Session Closed",
		Template:    "Your chat session has ended",
	}
	evt := events.BaseEvent{
		Type: "SESSION_CLOSED",
		Data: map[string]interface{}{
			"actor_id":    actorID.String(),
			"entity_type": "session",
			"entity_id":   sessionID.String(),
		},
		OccurredAt: time.Now(),
	}

	notif := s.buildNotification(uuid.New(), config, evt)

	require.NotNil(t, notif.ActorID)
	assert.Equal(t, actorID, *notif.ActorID)
	assert.Equal(t, "session", notif.EntityType)
	require.NotNil(t, notif.EntityID)
	assert.Equal(t, sessionID, *notif.EntityID)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(notif.Metadata, &meta))
	assert.Equal(t, "/sessions/"+sessionID.String(), meta["action_url"])
}

func TestBuildNotificationIgnoresMalformedIds(t *testing.T) {
	s := &NotificationService{}

	config := &model.NotificationType{
		Code:        "USER_REGISTERED",
		DisplayName: "New Registration",
		Template:    "{email} registered",
	}
	evt := events.BaseEvent{
		Type: "USER_REGISTERED",
		Data: map[string]interface{}{
			"email":    "someone@example.com",
			"actor_id": "not-a-uuid",
		},
		OccurredAt: time.Now(),
	}

	notif := s.buildNotification(uuid.New(), config, evt)

	assert.Nil(t, notif.ActorID)
	assert.Equal(t, "someone@example.com registered", notif.Message)
}
