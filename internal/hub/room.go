package hub

import (
	"sync"
)

type room struct {
	mu    sync.RWMutex
	conns map[Conn]struct{}
}

func newRoom() *room { return &room{conns: map[Conn]struct{}{}} }

func (r *room) add(c Conn) {
	r.mu.Lock()
	r.conns[c] = struct{}{}
	r.mu.Unlock()
}

// remove deletes c and returns the remaining member count.
func (r *room) remove(c Conn) int {
	r.mu.Lock()
	delete(r.conns, c)
	n := len(r.conns)
	r.mu.Unlock()
	return n
}

func (r *room) contains(c Conn) bool {
	r.mu.RLock()
	_, ok := r.conns[c]
	r.mu.RUnlock()
	return ok
}

func (r *room) count() int {
	r.mu.RLock()
	n := len(r.conns)
	r.mu.RUnlock()
	return n
}

// publish writes payload to every member and returns the connections
// whose write failed. I/O happens outside the lock.
func (r *room) publish(payload []byte) []Conn {
	r.mu.RLock()
	conns := make([]Conn, 0, len(r.conns))
	for c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	var failed []Conn
	for _, c := range conns {
		if err := c.Send(payload); err != nil {
			failed = append(failed, c)
		}
	}
	return failed
}
