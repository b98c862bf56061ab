package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"presencehub/internal/auth"
	"presencehub/internal/chat"
	"presencehub/internal/config"
	"presencehub/internal/http/http_server"
	"presencehub/internal/http/statshandler"
	"presencehub/internal/hub"
	"presencehub/internal/redis/redis_client"
	"presencehub/internal/rooms"
	"presencehub/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Hub and room bookkeeping
	h := hub.New()
	registry := rooms.NewRegistry(h)
	aggregator := rooms.NewAggregator(registry, cfg.GameRooms)
	scheduler := rooms.NewScheduler(rooms.DebounceDelay)

	// 4. Chat publishing: in-process by default, Redis relay when configured
	var chatPub chat.Publisher = chat.NewLocalPublisher(registry)
	if cfg.RedisHost != "" {
		redisClient, err := redis_client.NewRedisClient(cfg.RedisHost, int(cfg.RedisPort))
		if err != nil {
			Log.Fatal("Failed to create Redis client", zap.Error(err))
		}
		defer redisClient.Close()

		relay := chat.NewRedisRelay(redisClient, registry)
		go relay.Run(ctx)
		chatPub = relay
		Log.Debug("Redis chat relay enabled")
	}

	// 5. Identity resolver for chat upgrades
	resolver := auth.NewResolver(cfg.AuthServiceURL, cfg.AuthTimeout)

	// 6. WS server: lifecycle, dispatch, upgrades
	wsSrv := ws.NewServer(h, registry, aggregator, scheduler, chatPub, resolver, cfg.AuthTimeout)

	// 7. HTTP + WS server
	statsH := statshandler.New(h, aggregator)
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, statsH)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
