package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/recruita/internal/app"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/recruita/pkg/config"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := app.NewLogger(&config.Config{LogLevel: "info"}, "recruita-worker", os.Stdout)
		bootLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg, "recruita-worker", os.Stdout)
	logger.Info("starting recruita worker")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create event publisher
	var publisher eventbus.Publisher
	var rabbit *eventbus.RabbitMQPublisher
	rabbit, err = eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
		publisher = eventbus.NewNoopPublisher(logger)
	} else {
		publisher = eventbus.NewBreakerPublisher(rabbit, eventbus.DefaultBreakerConfig("outbox-rabbitmq"), logger)
	}

	container, err := app.NewContainer(ctx, cfg, logger, app.WithPublisher(publisher))
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if rabbit != nil {
		container.Health.Register("rabbitmq", true, rabbit.Ping)
	}

	if err := container.StartBackground(ctx); err != nil {
		logger.Error("failed to start outbox processor", "error", err)
		os.Exit(1)
	}

	// Consume interview events and advance applications through the pipeline.
	if rabbit != nil {
		registry := eventbus.NewConsumerRegistry(logger)
		registry.Register(container.StageSubscriber)

		consumer, err := eventbus.NewRabbitMQConsumer(cfg.RabbitMQURL, "", registry, logger)
		if err != nil {
			logger.Error("failed to create RabbitMQ consumer", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()

		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("consumer stopped", "error", err)
				cancel()
			}
		}()
	}

	if cfg.WorkerHealthAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			stats := container.OutboxProcessor.GetStats()
			response := map[string]any{
				"status":            "ok",
				"running":           stats.IsRunning,
				"published":         stats.PublishedCount,
				"failed":            stats.FailedCount,
				"dead":              stats.DeadCount,
				"last_processed_at": stats.LastProcessedAt,
				"last_error_at":     stats.LastErrorAt,
				"last_error":        stats.LastError,
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(response)
		})

		mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
			checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			report := container.Health.Check(checkCtx)
			w.Header().Set("Content-Type", "application/json")
			if report.Status == observability.HealthStatusUnhealthy {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
			_ = json.NewEncoder(w).Encode(report)
		})

		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("health server error", "error", err)
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	statsInterval := cfg.OutboxStatsInterval
	if statsInterval <= 0 {
		statsInterval = time.Minute
	}
	statsTicker := time.NewTicker(statsInterval)
	defer statsTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-statsTicker.C:
				stats := container.OutboxProcessor.GetStats()
				logger.Info("outbox stats",
					"running", stats.IsRunning,
					"published", stats.PublishedCount,
					"failed", stats.FailedCount,
					"dead", stats.DeadCount,
					"lag_seconds", stats.LagSeconds,
					"oldest_message_at", stats.OldestMessageAt,
					"last_processed_at", stats.LastProcessedAt,
					"last_error_at", stats.LastErrorAt,
					"last_error", stats.LastError,
				)
			}
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down worker")
}
