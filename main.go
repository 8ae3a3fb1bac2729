package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"flyhuntgo/internal/config"
	"flyhuntgo/internal/game"
	"flyhuntgo/internal/http/http_server"
	"flyhuntgo/internal/ws"
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

	// 3. Room store + lifecycle manager
	store := game.NewStore()
	mgr := game.NewManager(store, cfg.CampaignLevels)

	// 4. Background: stale-room reaper
	reaper := game.NewReaper(mgr, cfg.ReapInterval, cfg.RoomTTL)
	go reaper.Run(ctx)

	// 5. WebSocket relay
	wsSrv := ws.NewWsServer(mgr)

	// 6. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, wsSrv, mgr)

	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()

	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
