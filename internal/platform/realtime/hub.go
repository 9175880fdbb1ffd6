// Package realtime implements the clinic's real-time fan-out layer: a
// hub-and-spoke room broadcaster behind a process-wide gateway. Connected
// clients join role-, user-, and entity-scoped rooms; REST handlers push
// fire-and-forget events into those rooms after their writes commit. The
// broadcast is a UI refresh trigger, not a source of truth: delivery is
// best-effort, at-most-once, with no replay for late joiners.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents a single live connection. Identity is unset until the
// client sends auth:join; events referencing identity before that simply
// carry empty fields. The rooms set is owned by the hub and only mutated
// under the hub's lock.
type Client struct {
	ID     string
	UserID string
	Role   string
	Send   chan []byte
	conn   Conn
	rooms  map[string]struct{}
}

// NewClient creates a client ready to be registered with a hub.
func NewClient(id string, conn Conn) *Client {
	return &Client{
		ID:    id,
		Send:  make(chan []byte, 256),
		conn:  conn,
		rooms: make(map[string]struct{}),
	}
}

// Hub is the room table: room name -> set of member clients. Every
// operation is a short critical section under one RWMutex; broadcasts
// never block on a slow client (buffered send, drop on full).
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	all   map[*Client]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
	}
}

// Register adds a connected client to the hub. The client belongs to no
// rooms until it joins them explicitly.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[c] = struct{}{}
}

// Unregister removes a client from the hub and every room it joined, and
// closes its send channel. Safe to call for an already-removed client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[c]; !ok {
		return
	}

	for room := range c.rooms {
		h.removeFromRoom(room, c)
	}
	c.rooms = make(map[string]struct{})

	delete(h.all, c)
	close(c.Send)
}

// Join adds the client to a room, creating the room if it is empty.
func (h *Hub) Join(c *Client, room RoomKey) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := room.String()
	if h.rooms[name] == nil {
		h.rooms[name] = make(map[*Client]struct{})
	}
	h.rooms[name][c] = struct{}{}
	c.rooms[name] = struct{}{}
}

// Leave removes the client from a room. Empty rooms disappear.
func (h *Hub) Leave(c *Client, room RoomKey) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := room.String()
	h.removeFromRoom(name, c)
	delete(c.rooms, name)
}

// LeaveFamily removes the client from every joined room in the family's
// namespace. A sweep rather than a single targeted leave: the client may
// have subscribed under several scope values over its lifetime and all of
// them must be cleared.
func (h *Hub) LeaveFamily(c *Client, f Family) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range c.rooms {
		if f.Owns(room) {
			h.removeFromRoom(room, c)
			delete(c.rooms, room)
		}
	}
}

// removeFromRoom must be called with the lock held.
func (h *Hub) removeFromRoom(room string, c *Client) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Rooms returns a snapshot of the client's joined room names.
func (h *Hub) Rooms(c *Client) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		names = append(names, room)
	}
	return names
}

// Broadcast sends an event to every current member of a room.
func (h *Hub) Broadcast(room RoomKey, event Event) {
	h.broadcast(room, event, nil)
}

// Relay sends an event to every member of a room except the sender, which
// already knows the result of its own action.
func (h *Hub) Relay(room RoomKey, sender *Client, event Event) {
	h.broadcast(room, event, sender)
}

func (h *Hub) broadcast(room RoomKey, event Event, exclude *Client) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("realtime: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	members, ok := h.rooms[room.String()]
	if !ok {
		return
	}

	for c := range members {
		if c == exclude {
			continue
		}
		select {
		case c.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// BroadcastAll sends an event to every connected client regardless of rooms.
func (h *Hub) BroadcastAll(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("realtime: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.all {
		select {
		case c.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoomCount returns the number of clients currently joined to a room.
func (h *Hub) RoomCount(room RoomKey) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room.String()])
}
