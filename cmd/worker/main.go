package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/infrastructure/offline"
	"github.com/tour-navigation/internal/infrastructure/osrm"
	"github.com/tour-navigation/internal/pkg/logger"
	"github.com/tour-navigation/internal/repository/cache"
	redisRepo "github.com/tour-navigation/internal/repository/redis"
	"github.com/tour-navigation/internal/usecase"
	"github.com/tour-navigation/internal/worker"
	workerNavigation "github.com/tour-navigation/internal/worker/navigation"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Navigation Position Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	sessionRepo := redisRepo.NewSessionRepository(redisClient.Client(), cfg.Navigation.SessionTTL, log)

	// 5. Initialize route providers
	offlineEngine := offline.NewEngine(&cfg.Offline, log)
	osrmClient := osrm.NewClient(&cfg.Routing, log)

	providers := make([]repository.RouteProvider, 0, 2)
	if offlineEngine.Initialized() {
		providers = append(providers, offlineEngine)
	}
	providers = append(providers, osrmClient)

	// 6. Initialize use cases
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

	// 7. Initialize workers
	positionWorker := workerNavigation.NewPositionWorker(
		streamRepo,
		navigationUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewManager(log)
	workerManager.Register(positionWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
