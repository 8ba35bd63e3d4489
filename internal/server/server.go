// Package server exposes the game service over HTTP and websockets.
package server

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules/internal/analysis"
	"github.com/lgbarn/chessrules/internal/config"
	"github.com/lgbarn/chessrules/internal/errors"
	"github.com/lgbarn/chessrules/internal/service"
)

// Server is the HTTP front end of a GameService.
type Server struct {
	app      *fiber.App
	cfg      *config.ServerConfig
	games    *service.GameService
	analyzer *analysis.Analyzer
	log      *config.Logger
}

// New builds the fiber application and registers every route.
func New(cfg *config.Config, games *service.GameService, analyzer *analysis.Analyzer) *Server {
	s := &Server{
		cfg:      cfg.Server,
		games:    games,
		analyzer: analyzer,
		log:      cfg.Logger(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "chess-server",
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	s.app.Use(s.logRequests)

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	api.Post("/games", s.createGame)
	api.Get("/games", s.listGames)
	api.Get("/games/:id", s.getGame)
	api.Delete("/games/:id", s.deleteGame)
	api.Post("/games/:id/moves", s.move)
	api.Get("/games/:id/destinations", s.destinations)
	api.Post("/games/:id/undo", s.undo)
	api.Post("/games/:id/reset", s.reset)
	api.Post("/analyze", s.analyze)

	s.app.Use("/ws", requireUpgrade)
	s.app.Get("/ws/games/:id", websocket.New(s.handleSocket, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until Shutdown is called.
func (s *Server) Listen() error {
	s.log.Infof("listening on %s", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

// Serve serves on an existing listener until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Infof("listening on %s", ln.Addr())
	return s.app.Listener(ln)
}

// Shutdown stops accepting connections and waits for active requests, up to
// the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debugf("%s %s %d %s", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
	return err
}

func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// publicErrors are reported by their own text, without the game context
// the service adds.
var publicErrors = []error{
	errors.ErrGameNotFound,
	errors.ErrGameOver,
	errors.ErrNothingToUndo,
	errors.ErrTooManyPositions,
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		s.log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(errorResponse{Error: reasonFor(err)})
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrInvalidMove), errors.Is(err, errors.ErrSelfCheck):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrGameOver), errors.Is(err, errors.ErrNothingToUndo):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrTooManyPositions):
		return fiber.StatusRequestEntityTooLarge
	case errors.As(err, &fe):
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func reasonFor(err error) string {
	var me *errors.MoveError
	if errors.As(err, &me) {
		return me.Reason()
	}
	for _, target := range publicErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
