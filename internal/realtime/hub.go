// Package realtime implements the websocket push fabric: a room-based hub
// plus the echo ingress handler. Delivery is at-most-once with no replay;
// clients that miss a push reconcile by re-reading state over HTTP.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Room name builders. A client may sit in any number of rooms at once.

// NotificationsRoom is the per-user room receiving new-notification pushes.
func NotificationsRoom(userID string) string {
	return "notifications-" + userID
}

// ConversationRoom is the per-user room for support conversation pushes.
func ConversationRoom(userID string) string {
	return "conversation-" + userID
}

// OrderRoom is the per-order room receiving tracking and driver updates.
func OrderRoom(orderID string) string {
	return "order-" + orderID
}

// ServerMessage is the wire envelope pushed to subscribers.
type ServerMessage struct {
	Event   string `json:"event"`
	Room    string `json:"room"`
	Payload any    `json:"payload,omitempty"`
}

// Hub routes published messages to room subscribers. All membership state
// lives behind one RWMutex; publishes take the read lock only. There is
// exactly one hub per process, built in the composition root.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	clients map[*Client]map[string]struct{}
	logger  *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		clients: make(map[*Client]map[string]struct{}),
		logger:  logger.With("component", "realtime.hub"),
	}
}

// Register adds a connected client with no room memberships yet.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = make(map[string]struct{})
}

// Unregister removes the client from every room and closes its send
// queue. Safe to call for an unknown client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	memberships, ok := h.clients[c]
	if !ok {
		return
	}

	for room := range memberships {
		h.leaveLocked(c, room)
	}
	delete(h.clients, c)
	close(c.send)
}

// Join subscribes the client to a room.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	memberships, ok := h.clients[c]
	if !ok {
		return
	}
	memberships[room] = struct{}{}

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

// Leave unsubscribes the client from a room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if memberships, ok := h.clients[c]; ok {
		delete(memberships, room)
	}
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room string) {
	members := h.rooms[room]
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Publish pushes an event to every subscriber of a room. The send is
// non-blocking per client: a subscriber with a full buffer loses this
// message instead of stalling the publisher.
func (h *Hub) Publish(room string, event string, payload any) {
	message, err := json.Marshal(ServerMessage{Event: event, Room: room, Payload: payload})
	if err != nil {
		h.logger.Error("dropping unmarshalable payload", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- message:
		default:
			h.logger.Warn("dropping message for slow client", "room", room, "event", event)
		}
	}
}

// RoomSize reports the current subscriber count of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
