package osrm

import (
	"fmt"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/pkg/geo"
)

type routeResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"` // метры
	Duration float64   `json:"duration"` // секунды
	Geometry string    `json:"geometry"` // encoded polyline
	Legs     []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Geometry string       `json:"geometry"`
	Name     string       `json:"name"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmManeuver struct {
	Type     string    `json:"type"`
	Modifier string    `json:"modifier"`
	Location []float64 `json:"location"` // [lon, lat]
}

// convertRoute переводит ответ OSRM в доменный Route.
// Первая и последняя точки заменяются на запрошенные, чтобы маршрут
// всегда начинался и заканчивался там, где просил вызывающий.
func convertRoute(r *osrmRoute, start, end domain.GeoPoint) (*domain.Route, error) {
	decoded := geo.DecodePolyline(r.Geometry, geo.PrecisionPolyline5)
	if len(decoded) == 0 {
		return nil, fmt.Errorf("empty route geometry")
	}

	points := make([]domain.GeoPoint, 0, len(decoded)+2)
	points = append(points, start)
	for _, p := range decoded {
		points = append(points, domain.GeoPoint{Lat: p[0], Lon: p[1]})
	}
	points = append(points, end)

	duration := r.Duration
	if duration == 0 {
		duration = r.Distance / domain.WalkingSpeedMPS
	}

	return &domain.Route{
		Points:       points,
		Distance:     r.Distance,
		Duration:     duration,
		Instructions: convertInstructions(r, points),
		Status:       domain.RouteStatusSuccess,
		Source:       domain.RouteSourceRemote,
	}, nil
}

// convertInstructions строит инструкции из шагов всех legs.
// Индекс инструкции - ближайшая точка геометрии к позиции манёвра.
func convertInstructions(r *osrmRoute, points []domain.GeoPoint) []domain.NavigationInstruction {
	var instructions []domain.NavigationInstruction

	lastIndex := 0
	for _, leg := range r.Legs {
		for _, step := range leg.Steps {
			instrType := maneuverType(step.Maneuver.Type, step.Maneuver.Modifier)

			index := lastIndex
			if len(step.Maneuver.Location) == 2 {
				index = closestPointIndex(points, step.Maneuver.Location[1], step.Maneuver.Location[0])
			}
			// Инструкции должны идти по неубывающим индексам
			if index < lastIndex {
				index = lastIndex
			}
			lastIndex = index

			instructions = append(instructions, domain.NavigationInstruction{
				Type:     instrType,
				Text:     instructionText(instrType, step.Name),
				Distance: step.Distance,
				Duration: step.Duration,
				Index:    index,
			})
		}
	}

	// Инварианты списка: depart с индексом 0 в начале, arrive в конце
	if len(instructions) == 0 || instructions[0].Type != domain.InstructionDepart {
		instructions = append([]domain.NavigationInstruction{{
			Type:  domain.InstructionDepart,
			Text:  instructionText(domain.InstructionDepart, ""),
			Index: 0,
		}}, instructions...)
	}
	instructions[0].Index = 0

	last := &instructions[len(instructions)-1]
	if last.Type != domain.InstructionArrive {
		instructions = append(instructions, domain.NavigationInstruction{
			Type:  domain.InstructionArrive,
			Text:  instructionText(domain.InstructionArrive, ""),
			Index: len(points) - 1,
		})
	} else {
		last.Index = len(points) - 1
	}

	return instructions
}

func closestPointIndex(points []domain.GeoPoint, lat, lon float64) int {
	best := 0
	bestDist := geo.Distance(lat, lon, points[0].Lat, points[0].Lon)
	for i := 1; i < len(points); i++ {
		d := geo.Distance(lat, lon, points[i].Lat, points[i].Lon)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func maneuverType(maneuver, modifier string) domain.InstructionType {
	switch maneuver {
	case "depart":
		return domain.InstructionDepart
	case "arrive":
		return domain.InstructionArrive
	case "roundabout", "rotary":
		return domain.InstructionRoundabout
	case "exit roundabout", "exit rotary":
		return domain.InstructionExitRoundabout
	case "turn", "end of road", "fork", "merge", "on ramp", "off ramp":
		return modifierType(modifier)
	case "continue", "new name":
		if modifier == "" || modifier == "straight" {
			return domain.InstructionStraight
		}
		return modifierType(modifier)
	default:
		return domain.InstructionContinue
	}
}

func modifierType(modifier string) domain.InstructionType {
	switch modifier {
	case "left":
		return domain.InstructionTurnLeft
	case "right":
		return domain.InstructionTurnRight
	case "slight left":
		return domain.InstructionSlightLeft
	case "slight right":
		return domain.InstructionSlightRight
	case "sharp left":
		return domain.InstructionSharpLeft
	case "sharp right":
		return domain.InstructionSharpRight
	case "uturn":
		return domain.InstructionUTurnLeft
	case "straight":
		return domain.InstructionStraight
	default:
		return domain.InstructionContinue
	}
}

func instructionText(t domain.InstructionType, street string) string {
	var base string
	switch t {
	case domain.InstructionDepart:
		base = "Head toward your destination"
	case domain.InstructionArrive:
		return "You have arrived at your destination"
	case domain.InstructionStraight:
		base = "Continue straight"
	case domain.InstructionTurnLeft:
		base = "Turn left"
	case domain.InstructionTurnRight:
		base = "Turn right"
	case domain.InstructionSlightLeft:
		base = "Turn slightly left"
	case domain.InstructionSlightRight:
		base = "Turn slightly right"
	case domain.InstructionSharpLeft:
		base = "Make a sharp left"
	case domain.InstructionSharpRight:
		base = "Make a sharp right"
	case domain.InstructionUTurnLeft, domain.InstructionUTurnRight:
		base = "Make a U-turn"
	case domain.InstructionRoundabout:
		base = "Enter the roundabout"
	case domain.InstructionExitRoundabout:
		base = "Exit the roundabout"
	default:
		base = "Continue"
	}

	if street != "" {
		return base + " onto " + street
	}
	return base
}
