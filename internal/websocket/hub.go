package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
	"github.com/Gotppsn/TP-chatbot-sub000/internal/pkg/logger"
)

const clusterChannel = "cluster_events"

// Hub tracks connected portal users and fans notifications out to them.
// A user can hold several connections at once (multiple tabs or devices).
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery. Nil when the portal
	// runs as a single instance.
	rdb *redis.Client

	// instanceID lets subscribeToRedis skip messages this instance
	// already delivered locally.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Last client disconnected", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

// Broadcast sends a notification to every connected client on every
// instance.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
	h.mu.RUnlock()

	h.publishToCluster("*", data)
}

// Send delivers a notification to one user on whichever instance holds
// their connection.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			close(client.Send)
			h.unregister <- client
		}
	}

	h.publishToCluster(userID.String(), data)
}

func (h *Hub) publishToCluster(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"origin":         h.instanceID,
		"target_user_id": target,
		"message":        json.RawMessage(data),
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

// subscribeToRedis relays notifications published by other instances to
// the clients connected here. Every instance subscribes to the same
// channel and filters by target user.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Origin       string          `json:"origin"`
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			// Already delivered locally before publishing.
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					select {
					case client.Send <- payload.Message:
					default:
						close(client.Send)
						h.unregister <- client
					}
				}
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()

		for _, client := range clients {
			select {
			case client.Send <- payload.Message:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
}
