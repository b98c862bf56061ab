package chat

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presencehub/internal/hub"
	"presencehub/internal/rooms"
)

type mockConn struct {
	mu   sync.Mutex
	sent [][]byte
}

func (m *mockConn) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, data)
	return nil
}

func (m *mockConn) Close() error { return nil }

func TestLocalPublisherReachesChatRoomOnly(t *testing.T) {
	h := hub.New()
	reg := rooms.NewRegistry(h)

	member := &mockConn{}
	outsider := &mockConn{}
	reg.Join(member, rooms.Chat)
	reg.Join(outsider, rooms.Global)

	NewLocalPublisher(reg).PublishChat(System("alice joined the chat"))

	require.Len(t, member.sent, 1)
	assert.Empty(t, outsider.sent)

	var got Message
	require.NoError(t, json.Unmarshal(member.sent[0], &got))
	assert.Equal(t, "CHAT_MESSAGE", got.Type)
	assert.True(t, got.IsSystem)
	assert.Equal(t, "system", got.DisplayType)
	assert.Equal(t, "alice joined the chat", got.Text)
	assert.NotZero(t, got.Timestamp)
}

func TestFromUserCarriesIdentity(t *testing.T) {
	id := Identity{UserID: "u1", DisplayName: "alice", ImageURL: "https://img/a.png"}
	msg := FromUser(id, "hello")

	assert.False(t, msg.IsSystem)
	assert.Equal(t, "user", msg.DisplayType)
	assert.Equal(t, "u1", msg.UserID)
	assert.Equal(t, "alice", msg.Username)
	assert.Equal(t, "https://img/a.png", msg.ImageURL)
	assert.Equal(t, "hello", msg.Text)
}

func TestRedisRelayPublish(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	reg := rooms.NewRegistry(hub.New())
	relay := NewRedisRelay(rdb, reg)

	msg := FromUser(Identity{UserID: "u1", DisplayName: "alice"}, "hi")
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	mock.ExpectPublish(relayChannel, payload).SetVal(1)
	relay.PublishChat(msg)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRelayPublishErrorIsSwallowed(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	reg := rooms.NewRegistry(hub.New())
	relay := NewRedisRelay(rdb, reg)

	mock.Regexp().ExpectPublish(relayChannel, `.*`).SetErr(assert.AnError)
	relay.PublishChat(System("x left the chat")) // must not panic
}
