package hub

import (
	"sync"
)

// Conn is one live subscriber held by a room. Send must be safe for
// concurrent use; a failed Send marks the connection dead.
type Conn interface {
	Send(data []byte) error
	Close() error
}

// Hub keeps connection sets per room name. A room exists exactly as long
// as it has members; publishing to an unknown room drops the payload.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func New() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

// Join adds c to the named room, creating the room on first join.
// Joining a room twice has no additional effect.
func (h *Hub) Join(name string, c Conn) {
	h.mu.Lock()
	r, ok := h.rooms[name]
	if !ok {
		r = newRoom()
		h.rooms[name] = r
	}
	h.mu.Unlock()

	r.add(c)
}

// Leave removes c from the named room. No-op if c is not a member.
// The last member leaving deletes the room.
func (h *Hub) Leave(name string, c Conn) {
	h.mu.RLock()
	r, ok := h.rooms[name]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if r.remove(c) == 0 {
		h.dropIfEmpty(name)
	}
}

// RemoveAll detaches c from every room it is a member of. Called once
// when the transport closes a connection.
func (h *Hub) RemoveAll(c Conn) {
	h.mu.RLock()
	members := make(map[string]*room, len(h.rooms))
	for name, r := range h.rooms {
		members[name] = r
	}
	h.mu.RUnlock()

	for name, r := range members {
		if r.contains(c) && r.remove(c) == 0 {
			h.dropIfEmpty(name)
		}
	}
}

// Count reports current membership of the named room; 0 for unknown rooms.
func (h *Hub) Count(name string) int {
	h.mu.RLock()
	r, ok := h.rooms[name]
	h.mu.RUnlock()
	if !ok {
		return 0
	}
	return r.count()
}

// Publish fans payload out to every member of the named room. Unknown
// room or zero members means the payload is dropped, not queued.
func (h *Hub) Publish(name string, payload []byte) {
	h.mu.RLock()
	r, ok := h.rooms[name]
	h.mu.RUnlock()
	if !ok {
		return
	}

	for _, c := range r.publish(payload) {
		// Writers that failed are dead; detach them everywhere.
		h.RemoveAll(c)
		_ = c.Close()
	}
}

// Stats reports the number of live rooms and total memberships across
// them (a connection in two rooms counts twice).
func (h *Hub) Stats() (rooms, members int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rooms = len(h.rooms)
	for _, r := range h.rooms {
		members += r.count()
	}
	return rooms, members
}

func (h *Hub) dropIfEmpty(name string) {
	h.mu.Lock()
	if r, ok := h.rooms[name]; ok && r.count() == 0 {
		delete(h.rooms, name)
	}
	h.mu.Unlock()
}
