package main

// @title Tour Navigation Service API
// @version 1.0.0
// @description Сервис пешеходной навигации по турам. Строит маршруты между остановками тура, ведёт пользователя по маршруту в реальном времени и отслеживает прогресс прохождения тура.
// @description
// @description Основные возможности:
// @description - Получение пешего маршрута между двумя точками (offline движок, OSRM зеркала, синтетический fallback)
// @description - Навигационные сессии: живые обновления позиции и навигационные кадры
// @description - Детекция схода с маршрута и фоновый перезапрос маршрута
// @description - Прогресс прохождения тура: остановки, посещения, процент завершения

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/tour-navigation/docs"
	"github.com/tour-navigation/internal/config"
	httpDelivery "github.com/tour-navigation/internal/delivery/http"
	"github.com/tour-navigation/internal/delivery/http/handler"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/infrastructure/offline"
	"github.com/tour-navigation/internal/infrastructure/osrm"
	"github.com/tour-navigation/internal/pkg/logger"
	"github.com/tour-navigation/internal/repository/cache"
	"github.com/tour-navigation/internal/repository/postgres"
	redisRepo "github.com/tour-navigation/internal/repository/redis"
	"github.com/tour-navigation/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Tour Navigation Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	tourRepo := postgres.NewTourRepository(db)
	visitRepo := postgres.NewVisitRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient.Client(), cfg.Navigation.SessionTTL, log)

	log.Info("Repositories initialized")

	// 7. Initialize route providers: offline движок первым, затем
	// удалённые OSRM зеркала
	offlineEngine := offline.NewEngine(&cfg.Offline, log)
	osrmClient := osrm.NewClient(&cfg.Routing, log)

	providers := make([]repository.RouteProvider, 0, 2)
	if offlineEngine.Initialized() {
		providers = append(providers, offlineEngine)
	}
	providers = append(providers, osrmClient)

	// 8. Initialize use cases
	synthetic := usecase.NewSyntheticRouteGenerator()
	acquisitionUC := usecase.NewRouteAcquisitionUseCase(
		usecase.NewRouteCache(cfg.Navigation.RouteCacheSize),
		providers,
		synthetic,
		log,
	)
	navigationUC := usecase.NewNavigationUseCase(
		acquisitionUC,
		synthetic,
		usecase.NewRouteMatcher(),
		sessionRepo,
		cfg.Navigation,
		log,
	)
	tourUC := usecase.NewTourProgressionUseCase(tourRepo, visitRepo, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers and server
	navigationHandler := handler.NewNavigationHandler(navigationUC, log)
	routeHandler := handler.NewRouteHandler(acquisitionUC, log)
	tourHandler := handler.NewTourHandler(tourUC, log)

	server := httpDelivery.NewServer(cfg, log, navigationHandler, routeHandler, tourHandler)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
