package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/pkg/geo"
)

func matcherRoute() *domain.Route {
	points := []domain.GeoPoint{
		{Lat: 53.5225, Lon: 8.1083},
		{Lat: 53.5200, Lon: 8.1200},
		{Lat: 53.5170, Lon: 8.1320},
		{Lat: 53.5142, Lon: 8.1428},
	}

	var distance float64
	for i := 1; i < len(points); i++ {
		distance += geo.Distance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}

	return &domain.Route{
		Points:   points,
		Distance: distance,
		Instructions: []domain.NavigationInstruction{
			{Type: domain.InstructionDepart, Text: "Head toward your destination", Index: 0},
			{Type: domain.InstructionTurnLeft, Text: "Turn left", Index: 2},
			{Type: domain.InstructionArrive, Text: "You have arrived at your destination", Index: 3},
		},
		Status: domain.RouteStatusSuccess,
	}
}

func TestRouteMatcher_Match(t *testing.T) {
	matcher := NewRouteMatcher()

	t.Run("position at start of straight route", func(t *testing.T) {
		route := &domain.Route{
			Points: []domain.GeoPoint{
				{Lat: 53.5225, Lon: 8.1083},
				{Lat: 53.5142, Lon: 8.1428},
			},
		}

		match := matcher.Match(domain.GeoPoint{Lat: 53.5225, Lon: 8.1083}, route)
		assert.Equal(t, 0, match.ClosestIndex)
		assert.InDelta(t, 0.0, match.LateralDistance, 0.001)
		assert.InDelta(t,
			geo.Distance(53.5225, 8.1083, 53.5142, 8.1428),
			match.RemainingDistance, 0.01)
	})

	t.Run("position near middle point", func(t *testing.T) {
		route := matcherRoute()

		match := matcher.Match(domain.GeoPoint{Lat: 53.5201, Lon: 8.1201}, route)
		assert.Equal(t, 1, match.ClosestIndex)
		assert.Less(t, match.LateralDistance, 30.0)

		expected := geo.Distance(53.5200, 8.1200, 53.5170, 8.1320) +
			geo.Distance(53.5170, 8.1320, 53.5142, 8.1428)
		assert.InDelta(t, expected, match.RemainingDistance, 0.01)
	})

	t.Run("off-route position reports large lateral distance", func(t *testing.T) {
		route := matcherRoute()

		match := matcher.Match(domain.GeoPoint{Lat: 53.5300, Lon: 8.1200}, route)
		assert.Greater(t, match.LateralDistance, 30.0)
	})
}

func TestRouteMatcher_NextInstruction(t *testing.T) {
	matcher := NewRouteMatcher()
	route := matcherRoute()

	t.Run("next pending instruction with recomputed distance", func(t *testing.T) {
		position := domain.GeoPoint{Lat: 53.5200, Lon: 8.1200}
		match := matcher.Match(position, route)

		instr := matcher.NextInstruction(position, match, route, 30)
		assert.Equal(t, domain.InstructionTurnLeft, instr.Type)

		// Дистанция пересчитана от ближайшей точки, не от старта маршрута
		expected := geo.Distance(53.5200, 8.1200, 53.5170, 8.1320)
		assert.InDelta(t, expected, instr.Distance, 0.01)
		assert.InDelta(t, expected/domain.WalkingSpeedMPS, instr.Duration, 0.01)
	})

	t.Run("synthesized continue when instructions exhausted", func(t *testing.T) {
		// Ближайшая точка - последняя, но до цели ещё сотни метров
		position := domain.GeoPoint{Lat: 53.5150, Lon: 8.1400}
		exhausted := &domain.Route{
			Points: route.Points,
			Instructions: []domain.NavigationInstruction{
				{Type: domain.InstructionDepart, Index: 0},
			},
		}

		match := matcher.Match(position, exhausted)
		if match.ClosestIndex < len(exhausted.Points)-1 {
			match.ClosestIndex = len(exhausted.Points) - 1
		}

		instr := matcher.NextInstruction(position, match, exhausted, 30)
		assert.Equal(t, domain.InstructionContinue, instr.Type)
		assert.InDelta(t,
			geo.Distance(position.Lat, position.Lon, 53.5142, 8.1428),
			instr.Distance, 0.01)
	})

	t.Run("arrive within arrival radius regardless of pending instructions", func(t *testing.T) {
		position := domain.GeoPoint{Lat: 53.51421, Lon: 8.14281}
		match := matcher.Match(position, route)

		instr := matcher.NextInstruction(position, match, route, 30)
		assert.Equal(t, domain.InstructionArrive, instr.Type)
		assert.Equal(t, 0.0, instr.Distance)
		assert.Equal(t, 0.0, instr.Duration)
	})
}
