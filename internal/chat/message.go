package chat

import (
	"time"
)

// Identity is the display identity attached to a chat connection after a
// successful upgrade.
type Identity struct {
	UserID      string
	DisplayName string
	ImageURL    string
}

// Message is the wire form of one chat frame. Messages are never stored;
// each is built per publish and fanned out immediately.
type Message struct {
	Type        string `json:"type"`
	IsSystem    bool   `json:"isSystem,omitempty"`
	DisplayType string `json:"displayType"`
	UserID      string `json:"userId,omitempty"`
	Username    string `json:"username,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Text        string `json:"text"`
	Timestamp   int64  `json:"timestamp"`
}

// System builds a server-originated announcement (joins, departures).
func System(text string) Message {
	return Message{
		Type:        "CHAT_MESSAGE",
		IsSystem:    true,
		DisplayType: "system",
		Text:        text,
		Timestamp:   time.Now().UnixMilli(),
	}
}

// FromUser builds a user message carrying the sender's identity.
func FromUser(id Identity, text string) Message {
	return Message{
		Type:        "CHAT_MESSAGE",
		DisplayType: "user",
		UserID:      id.UserID,
		Username:    id.DisplayName,
		ImageURL:    id.ImageURL,
		Text:        text,
		Timestamp:   time.Now().UnixMilli(),
	}
}
