package chat

import (
	"encoding/json"

	"go.uber.org/zap"

	"presencehub/internal/rooms"
)

// Publisher delivers a chat message to the chat room's audience.
type Publisher interface {
	PublishChat(msg Message)
}

// LocalPublisher fans out straight to the in-process chat room. This is
// the default single-instance mode.
type LocalPublisher struct {
	reg *rooms.Registry
}

func NewLocalPublisher(reg *rooms.Registry) *LocalPublisher {
	return &LocalPublisher{reg: reg}
}

func (p *LocalPublisher) PublishChat(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		zap.L().Warn("chat.marshal", zap.Error(err))
		return
	}
	p.reg.Publish(rooms.Chat, payload)
}
