package usecase

import (
	"fmt"
	"sync"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
)

// routeCache - ограниченный кеш маршрутов со строгим FIFO-вытеснением.
// Порядок вставки хранится отдельным слайсом ключей: итерация по map
// не гарантирует порядок, а вытесняться должен именно самый старый.
type routeCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*domain.Route
	order    []string
}

// NewRouteCache создает кеш на capacity записей
func NewRouteCache(capacity int) repository.RouteCache {
	return &routeCache{
		capacity: capacity,
		entries:  make(map[string]*domain.Route, capacity),
	}
}

// RouteCacheKey квантует пару (start, end) до ~1 м (5 знаков)
func RouteCacheKey(start, end domain.GeoPoint) string {
	return fmt.Sprintf("%.5f,%.5f:%.5f,%.5f", start.Lat, start.Lon, end.Lat, end.Lon)
}

func (c *routeCache) Get(key string) (*domain.Route, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	route, ok := c.entries[key]
	return route, ok
}

func (c *routeCache) Put(key string, route *domain.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		// Повторная вставка не освежает позицию: FIFO, не LRU
		c.entries[key] = route
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = route
	c.order = append(c.order, key)
}
