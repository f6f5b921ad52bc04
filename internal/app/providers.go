package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	bookingServices "github.com/felixgeelhaar/recruita/internal/booking/application/services"
	bookingDomain "github.com/felixgeelhaar/recruita/internal/booking/domain"
	"github.com/felixgeelhaar/recruita/internal/booking/infrastructure/catalog"
	interviewCommands "github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	interviewServices "github.com/felixgeelhaar/recruita/internal/interviews/application/services"
	interviewDomain "github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/pipeline/application/subscribers"
	pipelineDomain "github.com/felixgeelhaar/recruita/internal/pipeline/domain"
	"github.com/felixgeelhaar/recruita/internal/pipeline/infrastructure/webhook"
	resourceDomain "github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/config"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// registerInfrastructure provides storage, locking and event plumbing. The
// connection, config, logger and metrics are expected as values.
func registerInfrastructure(injector do.Injector, o options) {
	do.Provide(injector, func(i do.Injector) (sharedApplication.UnitOfWork, error) {
		return database.NewUnitOfWork(do.MustInvoke[database.Connection](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*RepositoryFactory, error) {
		return NewRepositoryFactory(do.MustInvoke[database.Connection](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (resourceDomain.RoomRepository, error) {
		return do.MustInvoke[*RepositoryFactory](i).RoomRepository()
	})
	do.Provide(injector, func(i do.Injector) (resourceDomain.AssetRepository, error) {
		return do.MustInvoke[*RepositoryFactory](i).AssetRepository()
	})
	do.Provide(injector, func(i do.Injector) (bookingDomain.Repository, error) {
		return do.MustInvoke[*RepositoryFactory](i).BookingRepository()
	})
	do.Provide(injector, func(i do.Injector) (interviewDomain.Repository, error) {
		return do.MustInvoke[*RepositoryFactory](i).InterviewRepository()
	})
	do.Provide(injector, func(i do.Injector) (outbox.Repository, error) {
		return do.MustInvoke[*RepositoryFactory](i).OutboxRepository()
	})

	do.Provide(injector, func(i do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return redis.NewClient(opts), nil
	})
	do.Provide(injector, func(i do.Injector) (lock.Locker, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.LockBackend != config.LockBackendRedis {
			return lock.NewKeyedMutex(), nil
		}
		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}
		return lock.NewRedisLocker(client, lock.RedisConfig{
			TTL:           cfg.LockTTL,
			Wait:          cfg.LockWait,
			RetryInterval: lock.DefaultRedisConfig().RetryInterval,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*eventbus.InProcessBus, error) {
		bus := eventbus.NewInProcessBus(do.MustInvoke[*slog.Logger](i))
		bus.RegisterConsumer(do.MustInvoke[*subscribers.StageSubscriber](i))
		return bus, nil
	})
	do.Provide(injector, func(i do.Injector) (eventbus.Publisher, error) {
		if o.publisher != nil {
			return o.publisher, nil
		}
		return do.MustInvoke[*eventbus.InProcessBus](i), nil
	})
	do.Provide(injector, func(i do.Injector) (*outbox.Processor, error) {
		return outbox.NewProcessor(
			do.MustInvoke[outbox.Repository](i),
			do.MustInvoke[eventbus.Publisher](i),
			processorConfig(do.MustInvoke[*config.Config](i)),
			do.MustInvoke[*slog.Logger](i),
			do.MustInvoke[observability.Metrics](i),
		), nil
	})
}

// registerBooking provides the catalog view and the ledger.
func registerBooking(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (bookingDomain.Catalog, error) {
		return catalog.NewAdapter(
			do.MustInvoke[resourceDomain.RoomRepository](i),
			do.MustInvoke[resourceDomain.AssetRepository](i),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*bookingServices.Ledger, error) {
		return bookingServices.NewLedger(
			do.MustInvoke[bookingDomain.Repository](i),
			do.MustInvoke[bookingDomain.Catalog](i),
			do.MustInvoke[lock.Locker](i),
			do.MustInvoke[sharedApplication.UnitOfWork](i),
			do.MustInvoke[observability.Metrics](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
}

// registerInterviews provides the reservation coordinator and the two
// configured policies.
func registerInterviews(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*interviewServices.Coordinator, error) {
		return interviewServices.NewCoordinator(
			do.MustInvoke[*bookingServices.Ledger](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (interviewCommands.BookingFailurePolicy, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return interviewCommands.BookingFailurePolicy(cfg.BookingFailurePolicy), nil
	})
	do.Provide(injector, func(i do.Injector) (interviewDomain.CompletionPolicy, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return interviewDomain.CompletionPolicy(cfg.FeedbackCompletionPolicy), nil
	})
}

// registerPipeline provides the stage subscriber. The webhook mover is used
// when PIPELINE_WEBHOOK_URL is set; otherwise moves are only logged.
func registerPipeline(injector do.Injector, o options) {
	do.Provide(injector, func(i do.Injector) (pipelineDomain.StageMover, error) {
		if o.mover != nil {
			return o.mover, nil
		}
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		if cfg.PipelineWebhookURL == "" {
			return subscribers.NewLogStageMover(logger), nil
		}
		return webhook.NewStageMover(webhook.Config{
			URL:     cfg.PipelineWebhookURL,
			Timeout: cfg.PipelineWebhookTimeout,
			Token:   cfg.PipelineWebhookToken,
		}, logger), nil
	})
	do.Provide(injector, func(i do.Injector) (*subscribers.StageSubscriber, error) {
		return subscribers.NewStageSubscriber(
			do.MustInvoke[pipelineDomain.StageMover](i),
			do.MustInvoke[observability.Metrics](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})
}

func processorConfig(cfg *config.Config) outbox.ProcessorConfig {
	pc := outbox.DefaultProcessorConfig()
	if cfg.OutboxPollInterval > 0 {
		pc.PollInterval = cfg.OutboxPollInterval
	}
	if cfg.OutboxBatchSize > 0 {
		pc.BatchSize = cfg.OutboxBatchSize
	}
	if cfg.OutboxMaxRetries > 0 {
		pc.MaxRetries = cfg.OutboxMaxRetries
	}
	if cfg.OutboxCleanupInterval > 0 {
		pc.CleanupInterval = cfg.OutboxCleanupInterval
	}
	pc.Retention = time.Duration(cfg.OutboxRetentionDays) * 24 * time.Hour
	return pc
}
