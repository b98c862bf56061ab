package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type clientConn struct {
	raw *websocket.Conn
	mu  sync.Mutex
}

func (c *clientConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.raw.SetWriteDeadline(time.Now().Add(writeWait))
	return c.raw.WriteMessage(websocket.TextMessage, data)
}

func (c *clientConn) Close() error {
	return c.raw.Close()
}
