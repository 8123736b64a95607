// Package web serves the live feed, single-shot advice and the reading API.
package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/teslashibe/moodcam/pkg/hub"
	"github.com/teslashibe/moodcam/pkg/resolver"
)

// Resolver is what the handlers need from the resolution pipeline.
// *resolver.Resolver satisfies it.
type Resolver interface {
	Resolve(ctx context.Context) (*resolver.Result, error)
	StreamFrame(ctx context.Context) ([]byte, error)
	Status() resolver.Status
	Labels() []resolver.LabelAdvice
}

// Config holds server options.
type Config struct {
	Addr string

	// StreamFPS paces /video_feed.
	StreamFPS int

	// MaxStreamFrames ends each feed after that many ticks. Zero streams
	// until the client leaves.
	MaxStreamFrames int

	// AccessLog enables per-request logging.
	AccessLog bool

	Logger *slog.Logger
}

// Server is the HTTP front end.
type Server struct {
	app      *fiber.App
	cfg      Config
	resolver Resolver
	readings *hub.Hub
	logger   *slog.Logger

	// ctx ends long-lived streams on shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates the server and registers routes. readings may be nil,
// in which case /ws/readings is not served.
func NewServer(cfg Config, res Resolver, readings *hub.Hub) *Server {
	if cfg.StreamFPS <= 0 {
		cfg.StreamFPS = 15
	}
	lg := cfg.Logger
	if lg == nil {
		lg = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		resolver: res,
		readings: readings,
		logger:   lg.With("component", "web"),
		ctx:      ctx,
		cancel:   cancel,
	}

	app := fiber.New(fiber.Config{
		AppName:               "moodcam",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
	}))
	if cfg.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/", s.handleIndex)
	app.Get("/video_feed", s.handleVideoFeed)
	app.Get("/get_advice", s.handleGetAdvice)
	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/reading", s.handleReading)
	api.Get("/status", s.handleStatus)
	api.Get("/labels", s.handleLabels)

	if readings != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws/readings", websocket.New(s.handleReadingsWS))
	}

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.app.Listen(s.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		s.cancel()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Shutdown ends open streams and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.app.ShutdownWithContext(ctx)
}
