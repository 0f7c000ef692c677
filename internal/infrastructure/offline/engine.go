package offline

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/geo"
	"go.uber.org/zap"
)

// Engine - встроенный движок маршрутизации поверх подготовленного графа.
// Отсутствие файла графа не считается ошибкой: движок просто остаётся
// неинициализированным и цепочка провайдеров его пропускает.
type Engine struct {
	graph  *Graph
	logger *zap.Logger
}

// NewEngine создает движок и пытается загрузить граф
func NewEngine(cfg *config.OfflineConfig, logger *zap.Logger) *Engine {
	e := &Engine{logger: logger}

	if cfg.GraphPath == "" {
		logger.Info("Offline routing disabled: no graph path configured")
		return e
	}

	g, err := LoadGraph(cfg.GraphPath)
	if err != nil {
		logger.Warn("Failed to load offline graph, offline routing disabled",
			zap.String("path", cfg.GraphPath),
			zap.Error(err))
		return e
	}

	e.graph = g
	logger.Info("Offline graph loaded",
		zap.String("path", cfg.GraphPath),
		zap.Int("nodes", len(g.Nodes)))
	return e
}

// Initialized сообщает, загружен ли граф
func (e *Engine) Initialized() bool {
	return e.graph != nil
}

func (e *Engine) Name() string {
	return "offline"
}

// TryRoute реализует repository.RouteProvider поверх CalculateRoute
func (e *Engine) TryRoute(ctx context.Context, start, end domain.GeoPoint) (*domain.Route, error) {
	return e.CalculateRoute(ctx, start, end, "foot")
}

// CalculateRoute строит кратчайший пеший маршрут по графу.
// Профиль всегда приводится к "foot": граф пешеходный и bike-профиль
// по нему не считается.
func (e *Engine) CalculateRoute(ctx context.Context, start, end domain.GeoPoint, profile string) (*domain.Route, error) {
	if !e.Initialized() {
		return nil, fmt.Errorf("offline engine unavailable")
	}
	_ = profile // see above

	if !geo.ValidateCoordinates(start.Lat, start.Lon) || !geo.ValidateCoordinates(end.Lat, end.Lon) {
		return nil, fmt.Errorf("invalid coordinates")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startID := e.graph.NearestNode(start.Lat, start.Lon)
	endID := e.graph.NearestNode(end.Lat, end.Lon)

	nodePath, err := e.shortestPath(startID, endID)
	if err != nil {
		return nil, err
	}

	points := make([]domain.GeoPoint, 0, len(nodePath)+2)
	points = append(points, start)
	for _, id := range nodePath {
		n := e.graph.Nodes[id]
		points = append(points, domain.GeoPoint{Lat: n.Lat, Lon: n.Lon})
	}
	points = append(points, end)

	var distance float64
	for i := 1; i < len(points); i++ {
		distance += geo.Distance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}

	route := &domain.Route{
		Points:   points,
		Distance: distance,
		Duration: distance / domain.WalkingSpeedMPS,
		Instructions: []domain.NavigationInstruction{
			{
				Type:     domain.InstructionDepart,
				Text:     "Head toward your destination",
				Distance: distance,
				Duration: distance / domain.WalkingSpeedMPS,
				Index:    0,
			},
			{
				Type:  domain.InstructionArrive,
				Text:  "You have arrived at your destination",
				Index: len(points) - 1,
			},
		},
		Status: domain.RouteStatusSuccess,
		Source: domain.RouteSourceOffline,
	}

	return route, nil
}

// shortestPath - Дейкстра по весам-расстояниям
func (e *Engine) shortestPath(startID, endID int64) ([]int64, error) {
	dist := map[int64]float64{startID: 0}
	prev := make(map[int64]int64)
	visited := make(map[int64]bool)

	pq := &nodeQueue{{id: startID, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*nodeItem)
		if visited[item.id] {
			continue
		}
		visited[item.id] = true

		if item.id == endID {
			break
		}

		for _, edge := range e.graph.Adj[item.id] {
			next := edge.To
			if visited[next] {
				continue
			}

			alt := dist[item.id] + edge.Distance
			if d, ok := dist[next]; !ok || alt < d {
				dist[next] = alt
				prev[next] = item.id
				heap.Push(pq, &nodeItem{id: next, dist: alt})
			}
		}
	}

	if !visited[endID] {
		return nil, fmt.Errorf("no route found between nodes %d and %d", startID, endID)
	}

	var path []int64
	for id := endID; ; {
		path = append([]int64{id}, path...)
		if id == startID {
			break
		}
		id = prev[id]
	}

	return path, nil
}

type nodeItem struct {
	id   int64
	dist float64
}

type nodeQueue []*nodeItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

var _ repository.RouteProvider = (*Engine)(nil)
