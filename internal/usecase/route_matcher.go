package usecase

import (
	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/pkg/geo"
)

// RouteMatcher сопоставляет живую позицию с удерживаемым маршрутом
type RouteMatcher struct{}

func NewRouteMatcher() *RouteMatcher {
	return &RouteMatcher{}
}

// Match находит ближайшую точку маршрута линейным проходом.
// LateralDistance - расстояние до неё, RemainingDistance - сумма
// отрезков от неё до конца маршрута.
func (m *RouteMatcher) Match(position domain.GeoPoint, route *domain.Route) domain.RouteMatch {
	closest := 0
	lateral := geo.Distance(position.Lat, position.Lon, route.Points[0].Lat, route.Points[0].Lon)

	for i := 1; i < len(route.Points); i++ {
		d := geo.Distance(position.Lat, position.Lon, route.Points[i].Lat, route.Points[i].Lon)
		if d < lateral {
			lateral = d
			closest = i
		}
	}

	remaining := 0.0
	for i := closest + 1; i < len(route.Points); i++ {
		remaining += geo.Distance(
			route.Points[i-1].Lat, route.Points[i-1].Lon,
			route.Points[i].Lat, route.Points[i].Lon,
		)
	}

	return domain.RouteMatch{
		ClosestIndex:      closest,
		LateralDistance:   lateral,
		RemainingDistance: remaining,
	}
}

// NextInstruction выбирает следующую инструкцию для позиции на маршруте.
// Дистанция и длительность инструкции пересчитываются от текущей точки:
// значения провайдера отсчитаны от старта маршрута и здесь не годятся.
func (m *RouteMatcher) NextInstruction(position domain.GeoPoint, match domain.RouteMatch, route *domain.Route, arrivalRadius float64) domain.NavigationInstruction {
	dest := route.End()
	toDest := geo.Distance(position.Lat, position.Lon, dest.Lat, dest.Lon)

	// В радиусе прибытия всегда arrive, что бы ни осталось в списке
	if toDest < arrivalRadius {
		return domain.NavigationInstruction{
			Type:  domain.InstructionArrive,
			Text:  "You have arrived at your destination",
			Index: len(route.Points) - 1,
		}
	}

	for _, instr := range route.Instructions {
		if instr.Index <= match.ClosestIndex {
			continue
		}

		distance := m.segmentDistance(route, match.ClosestIndex, instr.Index)
		return domain.NavigationInstruction{
			Type:     instr.Type,
			Text:     instr.Text,
			Distance: distance,
			Duration: distance / domain.WalkingSpeedMPS,
			Index:    instr.Index,
		}
	}

	// Все инструкции позади, но до цели ещё далеко
	return domain.NavigationInstruction{
		Type:     domain.InstructionContinue,
		Text:     "Continue toward your destination",
		Distance: toDest,
		Duration: toDest / domain.WalkingSpeedMPS,
		Index:    len(route.Points) - 1,
	}
}

func (m *RouteMatcher) segmentDistance(route *domain.Route, from, to int) float64 {
	if to > len(route.Points)-1 {
		to = len(route.Points) - 1
	}

	total := 0.0
	for i := from + 1; i <= to; i++ {
		total += geo.Distance(
			route.Points[i-1].Lat, route.Points[i-1].Lon,
			route.Points[i].Lat, route.Points[i].Lon,
		)
	}
	return total
}
