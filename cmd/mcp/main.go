package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	"github.com/felixgeelhaar/recruita/internal/app"
	mcpinternal "github.com/felixgeelhaar/recruita/internal/mcp"
	"github.com/felixgeelhaar/recruita/pkg/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := app.NewLogger(&config.Config{LogLevel: "info"}, "recruita-mcp", os.Stdout)
		bootLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg, "recruita-mcp", os.Stdout)

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

	cliApp, err := cli.NewApp(container)
	if err != nil {
		logger.Error("failed to initialize tools", "error", err)
		os.Exit(1)
	}

	if err := mcpinternal.Serve(ctx, cfg, cliApp, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
