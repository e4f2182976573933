package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"fcajbot/app/api"
	"fcajbot/config"
	"fcajbot/service"
)

type Server struct {
	listenAddr string
	app        *fiber.App
	logger     *slog.Logger
}

func New(cfg *config.Settings, assistant *service.Assistant) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: api.ErrorHandler,
	})

	var (
		checkHandler   = api.NewCheckHandler()
		requestHandler = api.NewRequestHandler(assistant)
		check          = app.Group("/check")
		apiv1          = app.Group("/api/v1")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Post("/ask", requestHandler.HandleAsk)
	apiv1.Post("/reset", requestHandler.HandleReset)

	return &Server{
		listenAddr: cfg.ListenAddr,
		app:        app,
		logger:     slog.Default(),
	}
}

func (s *Server) Run() error {
	s.logger.Info("server listening", "addr", s.listenAddr)
	return s.app.Listen(s.listenAddr)
}

func (s *Server) Shutdown() error {
	s.logger.Info("server stopping")
	return s.app.Shutdown()
}
