package dto

import (
	"encoding/json"

	"github.com/tour-navigation/internal/domain"
)

// StartNavigationRequest - запрос на открытие навигационной сессии
type StartNavigationRequest struct {
	Origin      PointInput `json:"origin" validate:"required"`
	Destination PointInput `json:"destination" validate:"required"`
}

// PointInput - координата в запросе
type PointInput struct {
	Lat     float64  `json:"lat" validate:"min=-90,max=90"`
	Lon     float64  `json:"lon" validate:"min=-180,max=180"`
	Bearing *float64 `json:"bearing,omitempty" validate:"omitempty,min=0,max=360"`
}

// PositionUpdateRequest - обновление живой позиции в рамках сессии
type PositionUpdateRequest struct {
	Position PointInput `json:"position" validate:"required"`
}

// NavigationFrameResponse - кадр навигации для клиента
type NavigationFrameResponse struct {
	SessionID         string                 `json:"session_id"`
	InstructionText   string                 `json:"instruction_text"`
	InstructionType   domain.InstructionType `json:"instruction_type"`
	RemainingDistance float64                `json:"remaining_distance"`
	RemainingDuration float64                `json:"remaining_duration"`
	RouteGeometry     json.RawMessage        `json:"route_geometry"` // GeoJSON LineString
	Arrived           bool                   `json:"arrived"`
	Rerouting         bool                   `json:"rerouting"`
}

// ToPoint переводит входную координату в доменную
func (p PointInput) ToPoint() domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat, Lon: p.Lon, Bearing: p.Bearing}
}
