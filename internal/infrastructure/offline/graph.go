package offline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tour-navigation/internal/pkg/geo"
)

// Node - вершина пешеходного графа
type Node struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Edge - ребро графа. Distance в метрах, 0 - вычислить по координатам.
type Edge struct {
	From     int64   `json:"from"`
	To       int64   `json:"to"`
	Distance float64 `json:"distance,omitempty"`
}

// Graph - пешеходный граф, загруженный из подготовленного файла.
// Рёбра считаются двусторонними: пешеход ходит в обе стороны.
type Graph struct {
	Nodes map[int64]*Node
	Adj   map[int64][]*Edge
}

type graphFile struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// LoadGraph читает граф из JSON-файла
func LoadGraph(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	var file graphFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse graph file: %w", err)
	}

	if len(file.Nodes) == 0 {
		return nil, fmt.Errorf("graph file contains no nodes")
	}

	g := &Graph{
		Nodes: make(map[int64]*Node, len(file.Nodes)),
		Adj:   make(map[int64][]*Edge),
	}

	for i := range file.Nodes {
		n := file.Nodes[i]
		g.Nodes[n.ID] = &n
	}

	for i := range file.Edges {
		e := file.Edges[i]
		from, okFrom := g.Nodes[e.From]
		to, okTo := g.Nodes[e.To]
		if !okFrom || !okTo {
			return nil, fmt.Errorf("edge references unknown node: %d -> %d", e.From, e.To)
		}

		if e.Distance == 0 {
			e.Distance = geo.Distance(from.Lat, from.Lon, to.Lat, to.Lon)
		}

		reverse := Edge{From: e.To, To: e.From, Distance: e.Distance}
		g.Adj[e.From] = append(g.Adj[e.From], &e)
		g.Adj[e.To] = append(g.Adj[e.To], &reverse)
	}

	return g, nil
}

// NearestNode возвращает ID ближайшей вершины к точке (линейный поиск)
func (g *Graph) NearestNode(lat, lon float64) int64 {
	var bestID int64
	bestDist := -1.0

	for id, n := range g.Nodes {
		d := geo.Distance(lat, lon, n.Lat, n.Lon)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestID = id
		}
	}

	return bestID
}
