package hub

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConn struct {
	mu      sync.Mutex
	sent    [][]byte
	sendErr error
	closed  bool
}

func (m *mockConn) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, data)
	return nil
}

func (m *mockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConn) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestJoinAndCount(t *testing.T) {
	h := New()
	a, b := &mockConn{}, &mockConn{}

	assert.Equal(t, 0, h.Count("global-room"), "unknown room counts zero")

	h.Join("global-room", a)
	h.Join("global-room", b)
	assert.Equal(t, 2, h.Count("global-room"))

	// Joining again is idempotent.
	h.Join("global-room", a)
	assert.Equal(t, 2, h.Count("global-room"))
}

func TestLeaveRemovesEmptyRoom(t *testing.T) {
	h := New()
	a := &mockConn{}

	h.Join("/blog", a)
	require.Equal(t, 1, h.Count("/blog"))

	h.Leave("/blog", a)
	assert.Equal(t, 0, h.Count("/blog"))

	rooms, _ := h.Stats()
	assert.Equal(t, 0, rooms, "empty room must vanish")

	// Leaving a room you are not in is a no-op.
	h.Leave("/blog", a)
	h.Leave("never-existed", a)
}

func TestPublishReachesMembersOnly(t *testing.T) {
	h := New()
	in1, in2, out := &mockConn{}, &mockConn{}, &mockConn{}

	h.Join("chat-room", in1)
	h.Join("chat-room", in2)
	h.Join("other", out)

	h.Publish("chat-room", []byte("hello"))

	assert.Equal(t, 1, in1.sentCount())
	assert.Equal(t, 1, in2.sentCount())
	assert.Equal(t, 0, out.sentCount())
}

func TestPublishUnknownRoomIsNoop(t *testing.T) {
	h := New()
	h.Publish("ghost", []byte("x")) // must not panic or create the room
	rooms, _ := h.Stats()
	assert.Equal(t, 0, rooms)
}

func TestPublishDropsFailedWriters(t *testing.T) {
	h := New()
	ok := &mockConn{}
	dead := &mockConn{sendErr: errors.New("broken pipe")}

	h.Join("chat-room", ok)
	h.Join("chat-room", dead)
	h.Join("global-room", dead)

	h.Publish("chat-room", []byte("hello"))

	assert.Equal(t, 1, h.Count("chat-room"))
	assert.Equal(t, 0, h.Count("global-room"), "dead conn detached everywhere")
	assert.True(t, dead.closed)
}

func TestRemoveAll(t *testing.T) {
	h := New()
	a, b := &mockConn{}, &mockConn{}

	h.Join("global-room", a)
	h.Join("/blog", a)
	h.Join("global-room", b)

	h.RemoveAll(a)

	assert.Equal(t, 1, h.Count("global-room"))
	assert.Equal(t, 0, h.Count("/blog"))
}

func TestStats(t *testing.T) {
	h := New()
	a, b := &mockConn{}, &mockConn{}

	h.Join("global-room", a)
	h.Join("global-room", b)
	h.Join("/blog", a)

	rooms, members := h.Stats()
	assert.Equal(t, 2, rooms)
	assert.Equal(t, 3, members)
}
