// Package api provides the HTTP API for interview scheduling and resource
// availability.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/pkg/observability"
)

const (
	headerRequestID      = "X-Request-ID"
	headerActorID        = "X-Actor-ID"
	headerOrganizationID = "X-Organization-ID"
)

// Server is the HTTP API server.
type Server struct {
	engine *gin.Engine
	server *http.Server
	logger *slog.Logger
	health *observability.HealthRegistry
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           "0.0.0.0:8080",
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, interviews *InterviewHandler, availability *AvailabilityHandler, health *observability.HealthRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	engine.Use(requestContext(logger))

	s := &Server{
		engine: engine,
		logger: logger,
		health: health,
	}
	s.registerRoutes(interviews, availability)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) registerRoutes(interviews *InterviewHandler, availability *AvailabilityHandler) {
	s.engine.GET("/health", s.handleHealth)

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/interviews", interviews.Schedule)
		v1.GET("/interviews/:id", interviews.Get)
		v1.POST("/interviews/:id/reschedule", interviews.Reschedule)
		v1.POST("/interviews/:id/cancel", interviews.Cancel)
		v1.POST("/interviews/:id/complete", interviews.Complete)
		v1.POST("/interviews/:id/no-show", interviews.NoShow)
		v1.POST("/interviews/:id/feedback", interviews.Feedback)
		v1.GET("/interviews/:id/bookings", interviews.Bookings)

		v1.GET("/rooms/availability", availability.Rooms)
		v1.GET("/assets/availability", availability.Assets)
	}
}

// Handler exposes the routes for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.health == nil {
		c.JSON(http.StatusOK, gin.H{
			"status": observability.HealthStatusHealthy,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	report := s.health.Check(c.Request.Context())
	status := http.StatusOK
	if report.Status == observability.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// Start starts the API server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", headerRequestID, headerActorID, headerOrganizationID},
		ExposeHeaders: []string{headerRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// requestContext tags the request context with a request id and the calling
// actor, and logs each request once it completes.
func requestContext(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)

		ctx := observability.WithRequestID(c.Request.Context(), requestID)
		ctx = observability.WithCorrelationID(ctx, requestID)
		if actor := c.GetHeader(headerActorID); actor != "" {
			if _, err := uuid.Parse(actor); err == nil {
				ctx = observability.WithActorID(ctx, actor)
			}
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		)
	}
}
