package ws

import (
	"encoding/json"
	"sync"
)

// internal (untyped) handler signature.
type rawHandler func(s *Session, body json.RawMessage) error

// Router maps a frame's type tag to its handler.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
}

func NewRouter() *Router { return &Router{handlers: make(map[string]rawHandler)} }

// Register binds a message type to a strongly-typed handler. The frame's
// fields sit next to the tag, so the whole frame is decoded as Req.
func Register[Req any](r *Router, msgType string, h func(s *Session, req Req) error) {
	if msgType == "" {
		panic("ws router: empty message type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[msgType] = func(s *Session, body json.RawMessage) error {
		var req Req
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return errMalformedFrame
			}
		}
		return h(s, req)
	}
}

// dispatch routes a parsed frame to its handler. Unknown types are an
// error the caller drops silently.
func (r *Router) dispatch(s *Session, f frame) error {
	r.mu.RLock()
	h, ok := r.handlers[f.Type]
	r.mu.RUnlock()
	if !ok {
		return errUnknownType
	}
	return h(s, f.raw)
}

// registerAll wires every protocol message to its lifecycle handler.
func registerAll(r *Router) {
	Register(r, typePing, (*Session).handlePing)
	Register(r, typeChangeRoute, (*Session).handleChangeRoute)
	Register(r, typeJoinChat, (*Session).handleJoinChat)
	Register(r, typeChatMessage, (*Session).handleChatMessage)
	Register(r, typeLeaveChat, (*Session).handleLeaveChat)
}
