package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	bookingQueries "github.com/felixgeelhaar/recruita/internal/booking/application/queries"
	bookingServices "github.com/felixgeelhaar/recruita/internal/booking/application/services"
	interviewCommands "github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	interviewQueries "github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
	interviewServices "github.com/felixgeelhaar/recruita/internal/interviews/application/services"
	interviewDomain "github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/pipeline/application/subscribers"
	pipelineDomain "github.com/felixgeelhaar/recruita/internal/pipeline/domain"
	resourceCommands "github.com/felixgeelhaar/recruita/internal/resources/application/commands"
	resourceQueries "github.com/felixgeelhaar/recruita/internal/resources/application/queries"
	resourceDomain "github.com/felixgeelhaar/recruita/internal/resources/domain"
	sharedApplication "github.com/felixgeelhaar/recruita/internal/shared/application"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/recruita/pkg/config"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics
	Health  *observability.HealthRegistry

	// Database
	DBConn     database.Connection
	UnitOfWork sharedApplication.UnitOfWork

	// Redis, only when LOCK_BACKEND=redis
	RedisClient *redis.Client
	Locker      lock.Locker

	// Repositories
	RoomRepo      resourceDomain.RoomRepository
	AssetRepo     resourceDomain.AssetRepository
	InterviewRepo interviewDomain.Repository
	OutboxRepo    outbox.Repository

	// Events
	Bus             *eventbus.InProcessBus
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor
	StageSubscriber *subscribers.StageSubscriber

	// Services
	Ledger      *bookingServices.Ledger
	Coordinator *interviewServices.Coordinator

	// Catalog administration
	RegisterRoomHandler   *resourceCommands.RegisterRoomHandler
	RegisterAssetHandler  *resourceCommands.RegisterAssetHandler
	SetRoomActiveHandler  *resourceCommands.SetRoomActiveHandler
	SetAssetStatusHandler *resourceCommands.SetAssetStatusHandler
	ListRoomsHandler      *resourceQueries.ListRoomsHandler
	ListAssetsHandler     *resourceQueries.ListAssetsHandler

	// Availability and bookings
	ListAvailableRoomsHandler       *bookingQueries.ListAvailableRoomsHandler
	ListAvailableAssetsHandler      *bookingQueries.ListAvailableAssetsHandler
	ListBookingsForInterviewHandler *bookingQueries.ListBookingsForInterviewHandler

	// Interview commands
	ScheduleInterviewHandler   *interviewCommands.ScheduleInterviewHandler
	RescheduleInterviewHandler *interviewCommands.RescheduleInterviewHandler
	CancelInterviewHandler     *interviewCommands.CancelInterviewHandler
	CompleteInterviewHandler   *interviewCommands.CompleteInterviewHandler
	RecordNoShowHandler        *interviewCommands.RecordNoShowHandler
	AddFeedbackHandler         *interviewCommands.AddFeedbackHandler

	// Interview queries
	GetInterviewHandler                 *interviewQueries.GetInterviewHandler
	ListInterviewsForApplicationHandler *interviewQueries.ListInterviewsForApplicationHandler

	injector do.Injector
}

// Option customizes the object graph before it is resolved.
type Option func(*options)

type options struct {
	publisher eventbus.Publisher
	mover     pipelineDomain.StageMover
	metrics   observability.Metrics
}

// WithPublisher replaces the in-process bus as the outbox's destination.
// The container takes ownership and closes it.
func WithPublisher(publisher eventbus.Publisher) Option {
	return func(o *options) { o.publisher = publisher }
}

// WithStageMover replaces the configured pipeline collaborator.
func WithStageMover(mover pipelineDomain.StageMover) Option {
	return func(o *options) { o.mover = mover }
}

// WithMetrics replaces the in-memory metrics collector.
func WithMetrics(metrics observability.Metrics) Option {
	return func(o *options) { o.metrics = metrics }
}

// NewContainer opens the configured database, applies migrations and wires
// every handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = observability.NewInMemoryMetrics()
	}

	conn, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, o.metrics)
	do.ProvideValue(injector, conn)
	registerInfrastructure(injector, o)
	registerBooking(injector)
	registerInterviews(injector)
	registerPipeline(injector, o)

	c, err := resolve(injector, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to wire container: %w", err)
	}
	c.Config = cfg
	c.Logger = logger
	c.Metrics = o.metrics
	c.DBConn = conn
	c.injector = injector

	c.Health = observability.NewHealthRegistry()
	c.Health.Register("database", true, conn.Ping)
	if c.RedisClient != nil {
		c.Health.Register("redis", true, func(ctx context.Context) error {
			return c.RedisClient.Ping(ctx).Err()
		})
	}

	logger.Info("container ready",
		"driver", conn.Driver().String(),
		"lock_backend", cfg.LockBackend,
		"booking_failure_policy", cfg.BookingFailurePolicy,
		"feedback_completion_policy", cfg.FeedbackCompletionPolicy,
	)
	return c, nil
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (database.Connection, error) {
	driver, err := database.ParseDriver(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     driver,
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.Run(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("database ready", "driver", driver.String())
	return conn, nil
}

// resolve invokes every service the container exposes. The first failing
// provider aborts the build.
func resolve(i do.Injector, cfg *config.Config) (c *Container, err error) {
	c = &Container{}

	if c.UnitOfWork, err = do.Invoke[sharedApplication.UnitOfWork](i); err != nil {
		return nil, err
	}
	if cfg.LockBackend == config.LockBackendRedis {
		if c.RedisClient, err = do.Invoke[*redis.Client](i); err != nil {
			return nil, err
		}
	}
	if c.Locker, err = do.Invoke[lock.Locker](i); err != nil {
		return nil, err
	}
	if c.RoomRepo, err = do.Invoke[resourceDomain.RoomRepository](i); err != nil {
		return nil, err
	}
	if c.AssetRepo, err = do.Invoke[resourceDomain.AssetRepository](i); err != nil {
		return nil, err
	}
	if c.InterviewRepo, err = do.Invoke[interviewDomain.Repository](i); err != nil {
		return nil, err
	}
	if c.OutboxRepo, err = do.Invoke[outbox.Repository](i); err != nil {
		return nil, err
	}
	if c.Ledger, err = do.Invoke[*bookingServices.Ledger](i); err != nil {
		return nil, err
	}
	if c.Coordinator, err = do.Invoke[*interviewServices.Coordinator](i); err != nil {
		return nil, err
	}
	if c.StageSubscriber, err = do.Invoke[*subscribers.StageSubscriber](i); err != nil {
		return nil, err
	}
	if c.Bus, err = do.Invoke[*eventbus.InProcessBus](i); err != nil {
		return nil, err
	}
	if c.EventPublisher, err = do.Invoke[eventbus.Publisher](i); err != nil {
		return nil, err
	}
	if c.OutboxProcessor, err = do.Invoke[*outbox.Processor](i); err != nil {
		return nil, err
	}

	wireHandlers(c, i)
	return c, nil
}

func wireHandlers(c *Container, i do.Injector) {
	metrics := do.MustInvoke[observability.Metrics](i)
	logger := do.MustInvoke[*slog.Logger](i)
	bookingPolicy := do.MustInvoke[interviewCommands.BookingFailurePolicy](i)
	completionPolicy := do.MustInvoke[interviewDomain.CompletionPolicy](i)

	c.RegisterRoomHandler = resourceCommands.NewRegisterRoomHandler(c.RoomRepo, c.UnitOfWork)
	c.RegisterAssetHandler = resourceCommands.NewRegisterAssetHandler(c.AssetRepo, c.UnitOfWork)
	c.SetRoomActiveHandler = resourceCommands.NewSetRoomActiveHandler(c.RoomRepo, c.UnitOfWork)
	c.SetAssetStatusHandler = resourceCommands.NewSetAssetStatusHandler(c.AssetRepo, c.UnitOfWork)
	c.ListRoomsHandler = resourceQueries.NewListRoomsHandler(c.RoomRepo)
	c.ListAssetsHandler = resourceQueries.NewListAssetsHandler(c.AssetRepo)

	c.ListAvailableRoomsHandler = bookingQueries.NewListAvailableRoomsHandler(c.Ledger)
	c.ListAvailableAssetsHandler = bookingQueries.NewListAvailableAssetsHandler(c.Ledger)
	c.ListBookingsForInterviewHandler = bookingQueries.NewListBookingsForInterviewHandler(c.Ledger)

	c.ScheduleInterviewHandler = interviewCommands.NewScheduleInterviewHandler(
		c.InterviewRepo, c.Coordinator, c.OutboxRepo, c.UnitOfWork, bookingPolicy, metrics, logger,
	)
	c.RescheduleInterviewHandler = interviewCommands.NewRescheduleInterviewHandler(
		c.InterviewRepo, c.Coordinator, c.OutboxRepo, c.UnitOfWork, metrics, logger,
	)
	c.CancelInterviewHandler = interviewCommands.NewCancelInterviewHandler(
		c.InterviewRepo, c.Coordinator, c.OutboxRepo, c.UnitOfWork, metrics, logger,
	)
	c.CompleteInterviewHandler = interviewCommands.NewCompleteInterviewHandler(
		c.InterviewRepo, c.OutboxRepo, c.UnitOfWork, metrics, logger,
	)
	c.RecordNoShowHandler = interviewCommands.NewRecordNoShowHandler(
		c.InterviewRepo, c.OutboxRepo, c.UnitOfWork, metrics, logger,
	)
	c.AddFeedbackHandler = interviewCommands.NewAddFeedbackHandler(
		c.InterviewRepo, c.OutboxRepo, c.UnitOfWork, completionPolicy, metrics, logger,
	)

	c.GetInterviewHandler = interviewQueries.NewGetInterviewHandler(c.InterviewRepo)
	c.ListInterviewsForApplicationHandler = interviewQueries.NewListInterviewsForApplicationHandler(c.InterviewRepo)
}

// DrainEvents publishes every due outbox message. Short-lived adapters call
// it after a command so subscribers run before the process exits.
func (c *Container) DrainEvents(ctx context.Context) error {
	return c.OutboxProcessor.Drain(ctx)
}

// StartBackground starts the outbox processor when enabled.
func (c *Container) StartBackground(ctx context.Context) error {
	if !c.Config.OutboxProcessorEnabled {
		c.Logger.Info("outbox processor disabled")
		return nil
	}
	return c.OutboxProcessor.Start(ctx)
}

// Close stops background work and releases connections.
func (c *Container) Close() error {
	c.OutboxProcessor.Stop()

	var errs []error
	if err := c.EventPublisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("publisher: %w", err))
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if err := c.DBConn.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	return errors.Join(errs...)
}
