package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/felixgeelhaar/recruita/adapter/api"
	"github.com/felixgeelhaar/recruita/internal/app"
	"github.com/felixgeelhaar/recruita/pkg/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := app.NewLogger(&config.Config{LogLevel: "info"}, "recruita-api", os.Stdout)
		bootLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg, "recruita-api", os.Stdout)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := container.StartBackground(ctx); err != nil {
		logger.Error("failed to start outbox processor", "error", err)
		os.Exit(1)
	}

	serverCfg := api.DefaultServerConfig()
	serverCfg.Addr = cfg.HTTPAddr
	serverCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	server, err := api.NewFromContainer(container, serverCfg)
	if err != nil {
		logger.Error("failed to initialize API server", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("API server error", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("API server shutdown error", "error", err)
	}
	logger.Info("API server stopped")
}
