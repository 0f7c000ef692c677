package dto

import (
	"encoding/json"

	"github.com/tour-navigation/internal/domain"
)

// RouteRequest - запрос маршрута между двумя точками
type RouteRequest struct {
	Start PointInput `json:"start" validate:"required"`
	End   PointInput `json:"end" validate:"required"`
}

// RouteResponse - маршрут для клиента
type RouteResponse struct {
	Geometry     json.RawMessage       `json:"geometry"` // GeoJSON LineString
	Distance     float64               `json:"distance"` // метры
	Duration     float64               `json:"duration"` // секунды
	Instructions []InstructionResponse `json:"instructions"`
	Source       domain.RouteSource    `json:"source"`
}

// InstructionResponse - одна навигационная инструкция маршрута
type InstructionResponse struct {
	Type     domain.InstructionType `json:"type"`
	Text     string                 `json:"text"`
	Distance float64                `json:"distance"`
	Duration float64                `json:"duration"`
	Index    int                    `json:"index"`
}
