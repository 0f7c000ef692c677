package offline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/domain"
)

// Мини-граф: четыре вершины вдоль набережной, прямая и обходная ветка
func writeTestGraph(t *testing.T) string {
	t.Helper()

	file := graphFile{
		Nodes: []Node{
			{ID: 1, Lat: 53.5225, Lon: 8.1083},
			{ID: 2, Lat: 53.5200, Lon: 8.1200},
			{ID: 3, Lat: 53.5170, Lon: 8.1320},
			{ID: 4, Lat: 53.5142, Lon: 8.1428},
		},
		Edges: []Edge{
			{From: 1, To: 2},
			{From: 2, To: 3},
			{From: 3, To: 4},
			// Длинный крюк, который Дейкстра должен отбросить
			{From: 1, To: 4, Distance: 100000},
		},
	}

	data, err := json.Marshal(file)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestEngine_CalculateRoute(t *testing.T) {
	logger := zap.NewNop()

	t.Run("shortest path through intermediate nodes", func(t *testing.T) {
		engine := NewEngine(&config.OfflineConfig{GraphPath: writeTestGraph(t)}, logger)
		require.True(t, engine.Initialized())

		start := domain.GeoPoint{Lat: 53.5225, Lon: 8.1083}
		end := domain.GeoPoint{Lat: 53.5142, Lon: 8.1428}

		route, err := engine.CalculateRoute(context.Background(), start, end, "bike")
		require.NoError(t, err)

		// start + 4 вершины + end
		assert.Len(t, route.Points, 6)
		assert.Equal(t, start, route.Points[0])
		assert.Equal(t, end, route.End())
		assert.Equal(t, domain.RouteStatusSuccess, route.Status)
		assert.Equal(t, domain.RouteSourceOffline, route.Source)

		// Крюк в 100 км отброшен
		assert.Less(t, route.Distance, 5000.0)
		assert.InDelta(t, route.Distance/domain.WalkingSpeedMPS, route.Duration, 0.01)

		require.Len(t, route.Instructions, 2)
		assert.Equal(t, domain.InstructionDepart, route.Instructions[0].Type)
		assert.Equal(t, domain.InstructionArrive, route.Instructions[1].Type)
		assert.Equal(t, len(route.Points)-1, route.Instructions[1].Index)
	})

	t.Run("uninitialized engine", func(t *testing.T) {
		engine := NewEngine(&config.OfflineConfig{}, logger)
		assert.False(t, engine.Initialized())

		_, err := engine.TryRoute(context.Background(), domain.GeoPoint{Lat: 53, Lon: 8}, domain.GeoPoint{Lat: 53.1, Lon: 8.1})
		assert.Error(t, err)
	})

	t.Run("missing graph file disables engine", func(t *testing.T) {
		engine := NewEngine(&config.OfflineConfig{GraphPath: "/nonexistent/graph.json"}, logger)
		assert.False(t, engine.Initialized())
	})

	t.Run("disconnected nodes yield no route", func(t *testing.T) {
		file := graphFile{
			Nodes: []Node{
				{ID: 1, Lat: 53.5225, Lon: 8.1083},
				{ID: 2, Lat: 53.5142, Lon: 8.1428},
			},
		}
		data, err := json.Marshal(file)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "graph.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		engine := NewEngine(&config.OfflineConfig{GraphPath: path}, logger)
		require.True(t, engine.Initialized())

		_, err = engine.CalculateRoute(context.Background(),
			domain.GeoPoint{Lat: 53.5225, Lon: 8.1083},
			domain.GeoPoint{Lat: 53.5142, Lon: 8.1428},
			"foot")
		assert.Error(t, err)
	})
}
