package domain

// GeoPoint - точка маршрута в координатах WGS84
type GeoPoint struct {
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Bearing *float64 `json:"bearing,omitempty"`
}

// RouteStatus - диагностический статус полученного маршрута
type RouteStatus string

const (
	RouteStatusSuccess       RouteStatus = "success"
	RouteStatusNetworkError  RouteStatus = "network_error"
	RouteStatusServerError   RouteStatus = "server_error"
	RouteStatusNoRouteFound  RouteStatus = "no_route_found"
	RouteStatusInvalidPoints RouteStatus = "invalid_points"
)

// RouteSource - какое звено цепочки провайдеров построило маршрут
type RouteSource string

const (
	RouteSourceCache     RouteSource = "cache"
	RouteSourceOffline   RouteSource = "offline"
	RouteSourceRemote    RouteSource = "remote"
	RouteSourceSynthetic RouteSource = "synthetic"
)

// InstructionType - тип навигационной инструкции
type InstructionType string

const (
	InstructionDepart         InstructionType = "depart"
	InstructionArrive         InstructionType = "arrive"
	InstructionStraight       InstructionType = "straight"
	InstructionTurnLeft       InstructionType = "turn_left"
	InstructionTurnRight      InstructionType = "turn_right"
	InstructionSlightLeft     InstructionType = "slight_left"
	InstructionSlightRight    InstructionType = "slight_right"
	InstructionSharpLeft      InstructionType = "sharp_left"
	InstructionSharpRight     InstructionType = "sharp_right"
	InstructionUTurnLeft      InstructionType = "uturn_left"
	InstructionUTurnRight     InstructionType = "uturn_right"
	InstructionRoundabout     InstructionType = "roundabout"
	InstructionExitRoundabout InstructionType = "exit_roundabout"
	InstructionContinue       InstructionType = "continue"
)

// NavigationInstruction - одна инструкция маршрута.
// Index ссылается на позицию в Route.Points.
type NavigationInstruction struct {
	Type     InstructionType `json:"type"`
	Text     string          `json:"text"`
	Distance float64         `json:"distance"` // метры
	Duration float64         `json:"duration"` // секунды
	Index    int             `json:"index"`
}

// Route - упорядоченный путь между двумя точками.
// Инварианты: len(Points) >= 2, инструкции отсортированы по Index,
// первая инструкция - depart (Index 0), последняя - arrive.
type Route struct {
	Points       []GeoPoint              `json:"points"`
	Distance     float64                 `json:"distance"` // метры
	Duration     float64                 `json:"duration"` // секунды
	Instructions []NavigationInstruction `json:"instructions"`
	Status       RouteStatus             `json:"status"`
	Source       RouteSource             `json:"source"`
}

// WalkingSpeedMPS - скорость пешехода для оценки длительности,
// если провайдер не вернул свою
const WalkingSpeedMPS = 1.4

// End возвращает последнюю точку маршрута
func (r *Route) End() GeoPoint {
	return r.Points[len(r.Points)-1]
}
