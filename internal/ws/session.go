package ws

import (
	"encoding/json"

	"go.uber.org/zap"

	"presencehub/internal/chat"
	"presencehub/internal/hub"
	"presencehub/internal/rooms"
)

// Kind tells a presence connection from a chat connection.
type Kind string

const (
	KindPresence Kind = "presence"
	KindChat     Kind = "chat"
)

type state int

const (
	stateConnecting state = iota
	stateOpen
	stateClosed // terminal; a client that wants back opens a new connection
)

// Session is the per-connection lifecycle state machine. All state
// mutation happens on the connection's reader goroutine: open before the
// reader starts, handlers inside it, close after it returns. Scheduled
// broadcasts only read live membership, so no lock is needed here.
type Session struct {
	id   string
	kind Kind
	conn hub.Conn

	reg     *rooms.Registry
	agg     *rooms.Aggregator
	sched   *rooms.Scheduler
	chatPub chat.Publisher

	st         state
	route      string
	authUserID string
	identity   chat.Identity
	joined     bool
}

// open moves CONNECTING → OPEN: subscribe to the relevant rooms and
// schedule the first count broadcast.
func (s *Session) open() {
	switch s.kind {
	case KindPresence:
		s.reg.Join(s.conn, rooms.Global)
		s.reg.Join(s.conn, s.route)
	case KindChat:
		s.reg.Join(s.conn, rooms.Chat)
	}
	s.st = stateOpen

	s.scheduleBroadcast(s.route)
	zap.L().Debug("session.open",
		zap.String("conn_id", s.id),
		zap.String("kind", string(s.kind)),
		zap.String("route", s.route),
	)
}

// close moves OPEN → CLOSED on transport close. A chat participant that
// still has an identity attached announces its departure first. Group
// membership is torn down by the transport layer, not here.
func (s *Session) close() {
	if s.st == stateClosed {
		return
	}
	s.st = stateClosed

	if s.kind == KindChat && s.joined && s.identity.UserID != "" {
		s.chatPub.PublishChat(chat.System(s.identity.DisplayName + " left the chat"))
	}

	s.scheduleBroadcast(s.route)
	zap.L().Debug("session.close", zap.String("conn_id", s.id))
}

func (s *Session) handlePing(req pingMsg) error {
	payload, err := json.Marshal(pongMsg{Type: typePong, Timestamp: req.Timestamp})
	if err != nil {
		return err
	}
	// Echo to the sender only, never broadcast.
	return s.conn.Send(payload)
}

func (s *Session) handleChangeRoute(req changeRouteMsg) error {
	if s.kind != KindPresence || s.st != stateOpen {
		return nil
	}
	if req.Route == "" || req.Route == s.route {
		// Same route: no membership change, no broadcast.
		return nil
	}

	old := s.route
	s.reg.Leave(s.conn, old)
	s.reg.Join(s.conn, req.Route)
	s.route = req.Route

	// Two synchronous recomputations: the old room must show the
	// departure, the new one the arrival. Membership was adjusted
	// explicitly above, so there is no teardown window to wait out.
	s.agg.Broadcast(old)
	s.agg.Broadcast(req.Route)
	return nil
}

func (s *Session) handleJoinChat(req joinChatMsg) error {
	if s.kind != KindChat || s.st != stateOpen {
		return nil
	}

	s.identity.UserID = s.authUserID
	if s.identity.UserID == "" {
		s.identity.UserID = req.UserID
	}
	if req.Username != "" {
		s.identity.DisplayName = req.Username
	}

	s.reg.Join(s.conn, rooms.Chat)
	s.joined = true

	s.chatPub.PublishChat(chat.System(s.identity.DisplayName + " joined the chat"))
	s.scheduleBroadcast(s.route)
	return nil
}

func (s *Session) handleChatMessage(req chatTextMsg) error {
	if s.kind != KindChat || s.st != stateOpen || !s.joined {
		return nil
	}
	if req.Text == "" {
		return nil
	}
	s.chatPub.PublishChat(chat.FromUser(s.identity, req.Text))
	return nil
}

func (s *Session) handleLeaveChat(leaveChatMsg) error {
	if s.kind != KindChat || s.st != stateOpen || !s.joined {
		return nil
	}

	s.chatPub.PublishChat(chat.System(s.identity.DisplayName + " left the chat"))

	// Only the subject is cleared; name and image were already used by
	// the departure message. The connection stays in the chat room.
	s.identity.UserID = ""
	s.joined = false

	s.scheduleBroadcast(s.route)
	return nil
}

// scheduleBroadcast debounces a recount: the transport may still report
// a closing connection as a member for a moment, so membership-changing
// transitions recount after a short settle window.
func (s *Session) scheduleBroadcast(route string) {
	s.sched.After(func() { s.agg.Broadcast(route) })
}
