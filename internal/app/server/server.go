package server

import (
	"context"

	"github.com/Azis2405/wpdev-copy-button/config"
	"github.com/Azis2405/wpdev-copy-button/internal/app/repository"
	"github.com/Azis2405/wpdev-copy-button/internal/app/service"
	"github.com/Azis2405/wpdev-copy-button/internal/content"
	inthttp "github.com/Azis2405/wpdev-copy-button/internal/http/handler"
	"github.com/Azis2405/wpdev-copy-button/internal/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies bundles infrastructure dependencies required by the HTTP server.
type Dependencies struct {
	Logger    *zap.Logger
	Postgres  *pgxpool.Pool
	Redis     *redis.Client
	NATS      *nats.Conn
	JetStream nats.JetStreamContext
	Events    repository.CopyEventRepository
	Content   content.Repository
	Config    *config.Config
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New()

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerMiddleware() {
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.deps.Logger))
	s.app.Use(middleware.CORS())
}

func (s *Server) registerRoutes() {
	cfg := s.deps.Config

	var publisher *service.EventPublisher
	if s.deps.JetStream != nil {
		publisher = service.NewEventPublisher(s.deps.JetStream)
	}

	tracking := service.NewTrackingService(s.deps.Logger, s.deps.Events, publisher, cfg.App)

	var rateLimit fiber.Handler
	if s.deps.Redis != nil {
		rateLimit = middleware.RateLimit(s.deps.Redis, middleware.TrackRateLimitConfig(), s.deps.Logger)
	}

	trackHandler := inthttp.NewTrackHandler(inthttp.TrackDeps{
		Logger:   s.deps.Logger,
		Tracking: tracking,
		Postgres: s.deps.Postgres,
		Secret:   []byte(cfg.App.TrackingSecret),
		App:      cfg.App,
		BaseURL:  cfg.App.BaseURL,
	})
	trackHandler.Register(s.app, rateLimit)

	adminHandler := inthttp.NewAdminHandler(inthttp.AdminDeps{
		Logger:      s.deps.Logger,
		Listing:     service.NewListingService(s.deps.Events, s.deps.Content),
		Aggregation: service.NewAggregationService(s.deps.Events, s.deps.Content),
		Export:      service.NewExportService(s.deps.Events, s.deps.Content),
		Events:      s.deps.Events,
		AdminKey:    cfg.App.AdminKey,
	})
	adminHandler.Register(s.app)
}
