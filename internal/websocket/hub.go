package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"notesync-be/internal/dto"
	"notesync-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

// Hub tracks live connections per user and fans sync events out to them. With
// redis configured it also relays events across instances, so a user connected
// to one instance still receives events produced on another.
type Hub struct {
	// UserID -> connections; one user may hold several devices open.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToCluster()
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
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a sync event to every connection the user holds. With redis
// the event goes through the cluster channel and each instance, this one
// included, delivers to its own sockets; without redis delivery is local only.
func (h *Hub) Send(userId uuid.UUID, event dto.SyncEvent) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "sync_event",
		"data": event,
	})
	if err != nil {
		return
	}

	if h.rdb == nil {
		h.deliverLocal(userId, data)
		return
	}

	payload, _ := json.Marshal(clusterPayload{
		TargetUserID: userId.String(),
		Message:      data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

func (h *Hub) deliverLocal(userId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[userId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop the connection rather than block the hub.
			// The unregister path owns closing Send; closing here too would
			// close the channel twice.
			h.logger.Warn("Hub", "Client buffer full, disconnecting", map[string]interface{}{"user_id": userId})
			h.unregister <- client
		}
	}
}

type clusterPayload struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// subscribeToCluster receives events published on the cluster channel,
// including this instance's own, and delivers to local connections.
func (h *Hub) subscribeToCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		userId, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.deliverLocal(userId, payload.Message)
	}
}
