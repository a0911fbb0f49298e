package realtime

import (
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session is the write side of one live push connection. Satisfied by
// *websocket.Conn from gofiber/contrib; tests swap in a fake.
type Session interface {
	WriteJSON(v interface{}) error
}

// Event is the envelope pushed over a live session.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub maps a user id to its single active push session. One entry per user:
// a reconnect replaces the previous session (last-connect-wins), so
// multi-device delivery is out of scope. Built empty at startup, entries
// live only for process uptime.
type Hub struct {
	mu       sync.Mutex
	sessions map[bson.ObjectID]Session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[bson.ObjectID]Session)}
}

// Register binds a user's live session, replacing any earlier one.
func (h *Hub) Register(userID bson.ObjectID, s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[userID] = s
}

// Unregister removes the user's entry, but only if it still points at s.
// A disconnect of a stale connection must not evict a newer session.
func (h *Hub) Unregister(userID bson.ObjectID, s Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.sessions[userID]; ok && cur == s {
		delete(h.sessions, userID)
	}
}

// Connected reports whether the user currently has a live session.
func (h *Hub) Connected(userID bson.ObjectID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessions[userID]
	return ok
}

// Push delivers an event to the user's session if one is connected.
// Best-effort: no queue, no retry, write errors are logged and dropped.
func (h *Hub) Push(userID bson.ObjectID, event string, payload interface{}) {
	h.mu.Lock()
	s, ok := h.sessions[userID]
	h.mu.Unlock()
	if !ok {
		return
	}

	if err := s.WriteJSON(Event{Event: event, Payload: payload}); err != nil {
		slog.Warn("push failed", "user_id", userID.Hex(), "event", event, "error", err)
	}
}
