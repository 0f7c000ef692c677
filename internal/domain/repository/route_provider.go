package repository

import (
	"context"

	"github.com/tour-navigation/internal/domain"
)

// RouteProvider - одно звено цепочки получения маршрута.
// Провайдеры пробуются по порядку, пока один не вернёт маршрут.
type RouteProvider interface {
	// Name возвращает имя провайдера для логов
	Name() string

	// TryRoute строит маршрут между двумя точками.
	// Возвращает ошибку, если провайдер не смог - вызывающий переходит
	// к следующему провайдеру, ошибка наружу не поднимается.
	TryRoute(ctx context.Context, start, end domain.GeoPoint) (*domain.Route, error)
}

// RouteCache - ограниченный кеш маршрутов по паре (start, end)
type RouteCache interface {
	// Get возвращает маршрут по ключу
	Get(key string) (*domain.Route, bool)

	// Put сохраняет маршрут, вытесняя самый старый при переполнении
	Put(key string, route *domain.Route)
}
