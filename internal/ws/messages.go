package ws

import (
	"encoding/json"
	"errors"
)

// Inbound and outbound frame tags.
const (
	typePing        = "PING"
	typePong        = "PONG"
	typeChangeRoute = "CHANGE_ROUTE"
	typeJoinChat    = "JOIN_CHAT"
	typeChatMessage = "CHAT_MESSAGE"
	typeLeaveChat   = "LEAVE_CHAT"
)

var (
	errMalformedFrame = errors.New("malformed frame")
	errUnknownType    = errors.New("unknown message type")
)

// frame is one parsed inbound message: its tag plus the raw bytes the
// typed handler decodes from.
type frame struct {
	Type string
	raw  json.RawMessage
}

// parseFrame validates that raw is JSON tagged with a type. The
// dispatcher drops frames that fail here; no error goes back to the
// client.
func parseFrame(raw []byte) (frame, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return frame{}, errMalformedFrame
	}
	if tag.Type == "" {
		return frame{}, errMalformedFrame
	}
	return frame{Type: tag.Type, raw: raw}, nil
}

type pingMsg struct {
	Timestamp int64 `json:"timestamp"`
}

type pongMsg struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

type changeRouteMsg struct {
	Route string `json:"route"`
}

type joinChatMsg struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type chatTextMsg struct {
	Text string `json:"text"`
}

type leaveChatMsg struct{}
