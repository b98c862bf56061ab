package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"presencehub/internal/auth"
	"presencehub/internal/chat"
	"presencehub/internal/hub"
	"presencehub/internal/rooms"
)

const (
	writeWait = 10 * time.Second

	// Connections speak PING/PONG keepalive, so the read deadline is
	// refreshed on every inbound frame.
	idleTimeout = 60 * time.Second

	maxFrameSize = 4096
)

type Server struct {
	hub         *hub.Hub
	reg         *rooms.Registry
	agg         *rooms.Aggregator
	sched       *rooms.Scheduler
	chatPub     chat.Publisher
	resolver    auth.IResolver
	authTimeout time.Duration
	router      *Router
	upgrader    websocket.Upgrader
}

func NewServer(
	h *hub.Hub,
	reg *rooms.Registry,
	agg *rooms.Aggregator,
	sched *rooms.Scheduler,
	chatPub chat.Publisher,
	resolver auth.IResolver,
	authTimeout time.Duration,
) *Server {
	srv := &Server{
		hub:         h,
		reg:         reg,
		agg:         agg,
		sched:       sched,
		chatPub:     chatPub,
		resolver:    resolver,
		authTimeout: authTimeout,
		router:      NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	registerAll(srv.router)
	return srv
}

// HandlePresence upgrades GET /live-user-count?route=. No auth.
func (s *Server) HandlePresence(ginCtx *gin.Context) {
	route := ginCtx.Query("route")
	if route == "" {
		route = rooms.DefaultRoute
	}

	raw, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		// Upgrader has already answered 400.
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	conn := &clientConn{raw: raw}
	sess := s.newSession(KindPresence, conn, route)
	sess.open()
	go s.reader(sess, conn)
}

// HandleChat upgrades GET /live-chat?token=&route=. The token must
// verify; the display profile is best-effort.
func (s *Server) HandleChat(ginCtx *gin.Context) {
	token := ginCtx.Query("token")
	if token == "" {
		ginCtx.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return
	}

	ctx, cancel := context.WithTimeout(ginCtx.Request.Context(), s.authTimeout)
	defer cancel()

	userID, err := s.resolver.Authenticate(ctx, token)
	if err != nil {
		ginCtx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := s.resolver.ResolveProfile(ctx, userID)
	if err != nil {
		// Non-fatal: the session proceeds under a fallback name.
		profile = auth.Profile{DisplayName: auth.FallbackDisplayName}
	}

	route := ginCtx.Query("route")
	if route == "" {
		route = rooms.DefaultRoute
	}

	raw, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	conn := &clientConn{raw: raw}
	sess := s.newSession(KindChat, conn, route)
	sess.authUserID = userID
	sess.identity = chat.Identity{
		UserID:      userID,
		DisplayName: profile.DisplayName,
		ImageURL:    profile.ImageURL,
	}
	sess.open()
	go s.reader(sess, conn)
}

func (s *Server) newSession(kind Kind, conn hub.Conn, route string) *Session {
	return &Session{
		id:      uuid.NewString(),
		kind:    kind,
		conn:    conn,
		reg:     s.reg,
		agg:     s.agg,
		sched:   s.sched,
		chatPub: s.chatPub,
		st:      stateConnecting,
		route:   route,
	}
}

// reader pumps inbound frames into the dispatcher until the transport
// closes. Frames of one connection are handled strictly in arrival
// order. Malformed or unrecognized frames are dropped without any reply.
func (s *Server) reader(sess *Session, conn *clientConn) {
	defer func() {
		sess.close()
		s.hub.RemoveAll(conn)
		_ = conn.Close()
	}()

	conn.raw.SetReadLimit(maxFrameSize)
	for {
		_ = conn.raw.SetReadDeadline(time.Now().Add(idleTimeout))

		_, data, err := conn.raw.ReadMessage()
		if err != nil {
			return // client closed, idle timeout, or transport error
		}

		f, err := parseFrame(data)
		if err != nil {
			zap.L().Debug("ws.frame_dropped", zap.String("conn_id", sess.id), zap.Error(err))
			continue
		}
		if err := s.router.dispatch(sess, f); err != nil {
			zap.L().Debug("ws.frame_dropped",
				zap.String("conn_id", sess.id),
				zap.String("frame_type", f.Type),
				zap.Error(err),
			)
		}
	}
}
