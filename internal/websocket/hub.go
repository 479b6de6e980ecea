package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"nexmind-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Identifies this instance on the cluster channel so we can skip
	// messages we published ourselves.
	instanceID string

	// Dedicated Logger
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
	// Start Redis Subscriber if Redis is available
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
						// Remove from slice
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropSlowClient schedules a client whose send buffer is full for removal.
// The unregister handler owns closing Send, so it is closed exactly once even
// if the same client stalls in several fanout passes. Queuing happens off the
// caller's goroutine because fanout holds the read lock the handler needs.
func (h *Hub) dropSlowClient(client *Client) {
	go func() {
		h.unregister <- client
	}()
}

// PushMessage is the envelope delivered to websocket clients.
type PushMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Broadcast sends a message to ALL connected clients.
func (h *Hub) Broadcast(message PushMessage) {
	// 1. Serialize
	data, _ := json.Marshal(message)

	// 2. Send to all local clients
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.dropSlowClient(client)
			}
		}
	}
	h.mu.RUnlock()

	// 3. Publish to Redis for other instances
	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":         h.instanceID,
			"target_user_id": "*", // Wildcard for broadcast
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// Send delivers a message to every connection of one user.
func (h *Hub) Send(userID uuid.UUID, message PushMessage) {
	// 1. Serialize
	data, _ := json.Marshal(message)

	// 2. Check locally
	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userID})
				h.dropSlowClient(client)
			}
		}
	}

	// 3. Always publish so the user's devices on other instances see it too.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":         h.instanceID,
			"target_user_id": userID.String(),
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and delivers only to
	// users it holds locally. Messages carry the publishing instance id so
	// the publisher skips its own copy (local delivery already happened).
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			Origin       string          `json:"origin"`
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}

		// Check for Broadcast
		if payload.TargetUserID == "*" {
			// Broadcast to all local clients
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					select {
					case client.Send <- payload.Message:
					default:
						h.dropSlowClient(client)
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

		// Check local
		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.dropSlowClient(client)
				}
			}
		}
	}
}
