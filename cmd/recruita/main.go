package main

import (
	"context"
	"os"

	"github.com/felixgeelhaar/recruita/adapter/cli"
	"github.com/felixgeelhaar/recruita/adapter/cli/asset"
	"github.com/felixgeelhaar/recruita/adapter/cli/interview"
	"github.com/felixgeelhaar/recruita/adapter/cli/room"
	"github.com/felixgeelhaar/recruita/internal/app"
	"github.com/felixgeelhaar/recruita/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := app.NewLogger(&config.Config{LogLevel: "info"}, "recruita", os.Stderr)
		bootLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, "recruita", os.Stderr)
	cli.SetLogger(logger)

	container, err := app.NewContainer(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cliApp, err := cli.NewApp(container)
	if err != nil {
		logger.Error("failed to initialize CLI", "error", err)
		os.Exit(1)
	}
	cli.SetApp(cliApp)

	cli.AddCommand(interview.Cmd)
	cli.AddCommand(room.Cmd)
	cli.AddCommand(asset.Cmd)

	cli.Execute()
}
