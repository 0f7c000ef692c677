package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/delivery/http/handler"
	"github.com/tour-navigation/internal/delivery/http/middleware"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	navigationHandler *handler.NavigationHandler
	routeHandler      *handler.RouteHandler
	tourHandler       *handler.TourHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	navigationHandler *handler.NavigationHandler,
	routeHandler *handler.RouteHandler,
	tourHandler *handler.TourHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Tour Navigation Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		navigationHandler: navigationHandler,
		routeHandler:      routeHandler,
		tourHandler:       tourHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Navigation session routes
	api.Post("/navigation/sessions", s.navigationHandler.StartSession)
	api.Post("/navigation/sessions/:id/position", s.navigationHandler.UpdatePosition)
	api.Delete("/navigation/sessions/:id", s.navigationHandler.StopSession)

	// Route routes
	api.Post("/routes", s.routeHandler.GetRoute)

	// Tour progression routes
	api.Post("/tours/:id/activate", s.tourHandler.Activate)
	api.Get("/tours/:id/progress", s.tourHandler.GetProgress)
	api.Post("/tours/:id/visit", s.tourHandler.MarkVisited)
	api.Post("/tours/:id/advance", s.tourHandler.Advance)
	api.Delete("/tours/:id/activate", s.tourHandler.Deactivate)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App возвращает fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
