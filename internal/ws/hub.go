package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	roomInactiveAfter      = 1 * time.Hour
)

// Hub is the process-wide group registry: one Room per channel, created
// lazily on first join and reaped once empty and idle. It is constructed
// once at startup and shared by every connection handler.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[uint]*Room
	shutdown chan struct{}
	once     sync.Once
	metrics  *Metrics
}

// Metrics counts hub traffic.
type Metrics struct {
	MessagesSent     atomic.Int64
	MessagesReceived atomic.Int64
	Connections      atomic.Int64
	Errors           atomic.Int64
}

func NewHub() *Hub {
	hub := &Hub{
		rooms:    make(map[uint]*Room),
		shutdown: make(chan struct{}),
		metrics:  &Metrics{},
	}

	go hub.cleanupLoop()

	return hub
}

// GetRoom returns the room for a channel, creating it on first use.
func (h *Hub) GetRoom(channelID uint) *Room {
	h.mu.RLock()
	room, exists := h.rooms[channelID]
	h.mu.RUnlock()

	if exists {
		return room
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if room, exists := h.rooms[channelID]; exists {
		return room
	}

	room = NewRoom(channelID)
	h.rooms[channelID] = room

	return room
}

// RoomIfExists looks a room up without creating it.
func (h *Hub) RoomIfExists(channelID uint) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, exists := h.rooms[channelID]
	return room, exists
}

// BroadcastChatMessage delivers a chat frame to every member of the
// channel's room, including the author's own connection.
func (h *Hub) BroadcastChatMessage(channelID uint, content, author string) {
	room := h.GetRoom(channelID)

	data, err := json.Marshal(ChatMessageEvent{
		Message: content,
		Author:  author,
	})
	if err != nil {
		log.Printf("hub: failed to marshal chat message: %v", err)
		h.metrics.Errors.Inc()
		return
	}

	room.Broadcast(data)
	h.metrics.MessagesSent.Inc()
}

func (h *Hub) Metrics() *Metrics {
	return h.metrics
}

// Shutdown stops the cleanup loop and closes every room and client.
func (h *Hub) Shutdown() {
	h.once.Do(func() {
		close(h.shutdown)
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range h.rooms {
		room.Close()
	}

	h.rooms = make(map[uint]*Room)
}

func (h *Hub) cleanupLoop() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.shutdown:
			return
		case <-ticker.C:
			h.cleanupInactiveRooms()
		}
	}
}

// cleanupInactiveRooms drops rooms with no members. Pure memory hygiene;
// a dropped room is recreated on the next join.
func (h *Hub) cleanupInactiveRooms() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channelID, room := range h.rooms {
		if room.IsEmpty() && room.IsInactive() {
			room.Close()
			delete(h.rooms, channelID)
		}
	}
}

// Room holds the live connection handles subscribed to one channel.
type Room struct {
	channelID  uint
	mu         sync.RWMutex
	clients    map[string]*Client // handle ID -> client
	createdAt  time.Time
	lastActive atomic.Time
}

func NewRoom(channelID uint) *Room {
	room := &Room{
		channelID: channelID,
		clients:   make(map[string]*Client),
		createdAt: time.Now(),
	}

	room.lastActive.Store(time.Now())

	return room
}

// Register adds a handle to the room. Registering the same handle twice is
// a no-op.
func (r *Room) Register(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[client.ID] = client
	r.lastActive.Store(time.Now())
}

// Unregister removes a handle. Unknown handles are ignored, and a stale
// entry is only removed when it is still the registered one.
func (r *Room) Unregister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, exists := r.clients[client.ID]; exists && stored == client {
		delete(r.clients, client.ID)
		r.lastActive.Store(time.Now())
	}
}

// Broadcast sends data to a consistent snapshot of the current members.
// Each member send is an independent non-blocking buffer write, so one slow
// client cannot delay the rest; a failed send means the client is gone and
// it is dropped from the room.
func (r *Room) Broadcast(data []byte) {
	r.mu.RLock()
	targets := make([]*Client, 0, len(r.clients))
	for _, client := range r.clients {
		targets = append(targets, client)
	}
	r.mu.RUnlock()

	var stale []*Client
	for _, client := range targets {
		if !client.SendRaw(data) {
			stale = append(stale, client)
		}
	}

	for _, client := range stale {
		r.Unregister(client)
		client.Close()
	}

	r.lastActive.Store(time.Now())
}

// MemberCount returns the number of registered handles.
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Contains reports whether the handle is currently registered.
func (r *Room) Contains(client *Client) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.clients[client.ID]
	return exists && stored == client
}

func (r *Room) IsEmpty() bool {
	return r.MemberCount() == 0
}

func (r *Room) IsInactive() bool {
	return time.Since(r.lastActive.Load()) > roomInactiveAfter
}

// Close tears the room down, closing every remaining client.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, client := range r.clients {
		client.Close()
		delete(r.clients, id)
	}
}
