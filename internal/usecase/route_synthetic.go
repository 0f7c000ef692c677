package usecase

import (
	"context"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/pkg/geo"
)

// Минимальная длина плеча L-образного пути. Короче - путь
// схлопывается в прямую из двух точек.
const minSyntheticLegM = 10.0

// SyntheticRouteGenerator - последний рубеж цепочки провайдеров.
// Строит детерминированный путь без сети и движка: start -> угол
// (end.lat, start.lon) -> end. Не может завершиться неудачей.
type SyntheticRouteGenerator struct{}

func NewSyntheticRouteGenerator() *SyntheticRouteGenerator {
	return &SyntheticRouteGenerator{}
}

func (g *SyntheticRouteGenerator) Name() string {
	return "synthetic"
}

// TryRoute реализует repository.RouteProvider. Ошибки не возвращает.
func (g *SyntheticRouteGenerator) TryRoute(ctx context.Context, start, end domain.GeoPoint) (*domain.Route, error) {
	return g.Generate(start, end), nil
}

// Generate строит синтетический маршрут
func (g *SyntheticRouteGenerator) Generate(start, end domain.GeoPoint) *domain.Route {
	corner := domain.GeoPoint{Lat: end.Lat, Lon: start.Lon}

	legA := geo.Distance(start.Lat, start.Lon, corner.Lat, corner.Lon)
	legB := geo.Distance(corner.Lat, corner.Lon, end.Lat, end.Lon)

	var points []domain.GeoPoint
	var distance float64

	if legA < minSyntheticLegM || legB < minSyntheticLegM {
		points = []domain.GeoPoint{start, end}
		distance = geo.Distance(start.Lat, start.Lon, end.Lat, end.Lon)
	} else {
		points = []domain.GeoPoint{start, corner, end}
		distance = legA + legB
	}

	duration := distance / domain.WalkingSpeedMPS

	instructions := []domain.NavigationInstruction{
		{
			Type:     domain.InstructionDepart,
			Text:     "Head toward your destination",
			Distance: distance,
			Duration: duration,
			Index:    0,
		},
	}
	if len(points) == 3 {
		instructions = append(instructions, domain.NavigationInstruction{
			Type:     domain.InstructionContinue,
			Text:     "Continue toward your destination",
			Distance: legB,
			Duration: legB / domain.WalkingSpeedMPS,
			Index:    1,
		})
	}
	instructions = append(instructions, domain.NavigationInstruction{
		Type:  domain.InstructionArrive,
		Text:  "You have arrived at your destination",
		Index: len(points) - 1,
	})

	return &domain.Route{
		Points:       points,
		Distance:     distance,
		Duration:     duration,
		Instructions: instructions,
		Status:       domain.RouteStatusSuccess,
		Source:       domain.RouteSourceSynthetic,
	}
}
