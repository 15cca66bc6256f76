package hub

import (
	"encoding/json"
	"sync"

	"warbler/backend/pkg/log"

	"go.uber.org/zap"
)

const EventMessageCreated = "message.created"

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one open stream of a user. The SSE handler drains it.
type Client chan []byte

// Hub fans events out to the open streams of each user.
type Hub struct {
	users map[uint]map[Client]bool
	mu    sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		users: make(map[uint]map[Client]bool),
	}
}

// Subscribe registers a stream for userID.
func (h *Hub) Subscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[Client]bool)
	}
	h.users[userID][client] = true
}

// Unsubscribe removes a stream and closes its channel.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.users[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.users, userID)
			}
		}
	}
}

// Subscribers returns how many streams userID has open.
func (h *Hub) Subscribers(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

// Broadcast sends an event to every stream of each listed user.
func (h *Hub) Broadcast(userIDs []uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var messageBytes []byte
	for _, userID := range userIDs {
		clients, ok := h.users[userID]
		if !ok {
			continue
		}
		if messageBytes == nil {
			var err error
			messageBytes, err = json.Marshal(event)
			if err != nil {
				log.L.Error("encode hub event", zap.String("type", event.Type), zap.Error(err))
				return
			}
		}

		for client := range clients {
			// Use a non-blocking send to prevent a slow client from blocking the hub.
			select {
			case client <- messageBytes:
			default:
				log.L.Debug("dropping event for slow client", zap.Uint("user_id", userID))
			}
		}
	}
}
