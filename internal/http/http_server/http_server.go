package http_server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abrar71/swaggerfilesv2" // swagger embed files

	"presencehub/internal/http/statshandler"
	"presencehub/internal/ws"
)

type httpServer struct {
	listenPort uint16
	srv        http.Server
	ln         net.Listener
	wsSrv      *ws.Server
	statsH     *statshandler.Handler
	ctx        context.Context
}

func NewHttpServer(ctx context.Context, listenPort uint16, wsSrv *ws.Server, statsH *statshandler.Handler) *httpServer {
	return &httpServer{
		listenPort: listenPort,
		wsSrv:      wsSrv,
		statsH:     statsH,
		ctx:        ctx,
	}
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	routerEngine := gin.New()

	// Swagger UI and API specs
	routerEngine.StaticFS("/swagger-apis", http.FS(swaggerfilesv2.FS))
	routerEngine.Static("/api-specs", "api_specs")

	// Static files for the demo page
	routerEngine.StaticFile("", "public/index.html")
	routerEngine.StaticFile("/script.js", "public/script.js")

	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	// websocket upgrade endpoints
	routerEngine.GET("/live-user-count", h.wsSrv.HandlePresence)
	routerEngine.GET("/live-chat", h.wsSrv.HandleChat)

	// operational REST API
	h.statsH.Register(routerEngine)

	h.srv = http.Server{
		Handler: routerEngine,
	}

	return h.srv.Serve(h.ln)
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(h.ctx, 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err // e.g. active conns didn't finish in time
	}

	if ctx.Err() == context.DeadlineExceeded {
		zap.L().Error("http_dispose", zap.Error(errors.New("shutdown timed out")))
		log.Println("shutdown timeout (10 s)")
	}

	return nil
}
