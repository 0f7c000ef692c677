package domain

import (
	"time"

	"github.com/google/uuid"
)

// NavigationFrame - снимок навигации, отдаваемый на каждое обновление позиции
type NavigationFrame struct {
	InstructionText   string          `json:"instruction_text"`
	InstructionType   InstructionType `json:"instruction_type"`
	RemainingDistance float64         `json:"remaining_distance"` // метры
	RemainingDuration float64         `json:"remaining_duration"` // секунды
	RouteGeometry     []GeoPoint      `json:"route_geometry"`
	Arrived           bool            `json:"arrived"`
	Rerouting         bool            `json:"rerouting"`
}

// RouteMatch - результат сопоставления позиции с маршрутом
type RouteMatch struct {
	ClosestIndex      int     `json:"closest_index"`
	LateralDistance   float64 `json:"lateral_distance"`   // метры до ближайшей точки маршрута
	RemainingDistance float64 `json:"remaining_distance"` // метры до конца маршрута
}

// NavigationSession - снимок сессии для восстановления после рестарта
type NavigationSession struct {
	ID           uuid.UUID  `json:"id"`
	Destination  GeoPoint   `json:"destination"`
	LastPosition *GeoPoint  `json:"last_position,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
