package usecase

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tour-navigation/internal/domain"
)

func cacheRoute(distance float64) *domain.Route {
	return &domain.Route{
		Points: []domain.GeoPoint{
			{Lat: 53.5225, Lon: 8.1083},
			{Lat: 53.5142, Lon: 8.1428},
		},
		Distance: distance,
		Status:   domain.RouteStatusSuccess,
	}
}

func TestRouteCacheKey(t *testing.T) {
	start := domain.GeoPoint{Lat: 53.52250001, Lon: 8.1083}
	end := domain.GeoPoint{Lat: 53.5142, Lon: 8.1428}

	// Квантование до 5 знаков: ~1 м сдвига даёт тот же ключ
	assert.Equal(t,
		RouteCacheKey(domain.GeoPoint{Lat: 53.5225, Lon: 8.1083}, end),
		RouteCacheKey(start, end))
}

func TestRouteCache_FIFOEviction(t *testing.T) {
	cache := NewRouteCache(10)

	for i := 0; i < 10; i++ {
		cache.Put(fmt.Sprintf("key-%d", i), cacheRoute(float64(i)))
	}

	// Все десять на месте
	for i := 0; i < 10; i++ {
		_, ok := cache.Get(fmt.Sprintf("key-%d", i))
		assert.True(t, ok)
	}

	// Одиннадцатый вытесняет ровно самый первый
	cache.Put("key-10", cacheRoute(10))

	_, ok := cache.Get("key-0")
	assert.False(t, ok)

	for i := 1; i <= 10; i++ {
		_, ok := cache.Get(fmt.Sprintf("key-%d", i))
		assert.True(t, ok, "key-%d must survive", i)
	}
}

func TestRouteCache_ReplaceKeepsOrder(t *testing.T) {
	cache := NewRouteCache(2)

	cache.Put("a", cacheRoute(1))
	cache.Put("b", cacheRoute(2))

	// Повторная вставка "a" не делает его моложе: FIFO, не LRU
	cache.Put("a", cacheRoute(3))
	cache.Put("c", cacheRoute(4))

	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest-inserted key must be evicted despite re-put")

	got, ok := cache.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Distance)

	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestRouteCache_ConcurrentAccess(t *testing.T) {
	cache := NewRouteCache(10)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("key-%d-%d", g, i%20)
				cache.Put(key, cacheRoute(float64(i)))
				cache.Get(key)
			}
		}(g)
	}
	wg.Wait()

	// Ёмкость не превышена: из 10 последних вставленных хотя бы часть доступна
	found := 0
	for g := 0; g < 8; g++ {
		for i := 0; i < 20; i++ {
			if _, ok := cache.Get(fmt.Sprintf("key-%d-%d", g, i)); ok {
				found++
			}
		}
	}
	assert.LessOrEqual(t, found, 10)
}
