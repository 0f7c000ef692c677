package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/geo"
)

// RouteAcquisitionUseCase - конвейер получения маршрута.
// Порядок: кеш -> провайдеры (offline, удалённые зеркала) -> синтетика.
// Никогда не возвращает ошибку: худший случай - синтетический маршрут.
type RouteAcquisitionUseCase struct {
	cache     repository.RouteCache
	providers []repository.RouteProvider
	synthetic *SyntheticRouteGenerator
	logger    *zap.Logger
}

// NewRouteAcquisitionUseCase - создание нового RouteAcquisitionUseCase.
// Провайдеры пробуются в переданном порядке.
func NewRouteAcquisitionUseCase(
	cache repository.RouteCache,
	providers []repository.RouteProvider,
	synthetic *SyntheticRouteGenerator,
	logger *zap.Logger,
) *RouteAcquisitionUseCase {
	return &RouteAcquisitionUseCase{
		cache:     cache,
		providers: providers,
		synthetic: synthetic,
		logger:    logger,
	}
}

// Acquire возвращает маршрут между двумя точками.
// Результат всегда имеет >= 2 точек и статус success.
func (uc *RouteAcquisitionUseCase) Acquire(ctx context.Context, start, end domain.GeoPoint) *domain.Route {
	if !geo.ValidateCoordinates(start.Lat, start.Lon) || !geo.ValidateCoordinates(end.Lat, end.Lon) {
		// Провайдеров с такими координатами не беспокоим
		uc.logger.Warn("Invalid coordinates, generating synthetic route",
			zap.Float64("start_lat", start.Lat), zap.Float64("start_lon", start.Lon),
			zap.Float64("end_lat", end.Lat), zap.Float64("end_lon", end.Lon))
		return uc.synthetic.Generate(start, end)
	}

	key := RouteCacheKey(start, end)

	if cached, ok := uc.cache.Get(key); ok {
		uc.logger.Debug("Route cache hit", zap.String("key", key))
		route := *cached
		route.Source = domain.RouteSourceCache
		return &route
	}

	for _, provider := range uc.providers {
		route, err := provider.TryRoute(ctx, start, end)
		if err != nil {
			// Ошибка провайдера - повод перейти к следующему, не наружу
			uc.logger.Warn("Route provider failed",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}
		if route == nil || len(route.Points) == 0 {
			uc.logger.Warn("Route provider returned empty route",
				zap.String("provider", provider.Name()))
			continue
		}

		uc.logger.Info("Route acquired",
			zap.String("provider", provider.Name()),
			zap.Int("points", len(route.Points)),
			zap.Float64("distance", route.Distance))

		uc.cache.Put(key, route)
		return route
	}

	// Синтетический маршрут не кешируется: следующий запрос той же пары
	// снова попробует настоящие провайдеры
	uc.logger.Info("All route providers failed, generating synthetic route")
	return uc.synthetic.Generate(start, end)
}
