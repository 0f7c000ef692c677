package dto

import "github.com/tour-navigation/internal/domain"

// TourProgressResponse - снимок прохождения тура
type TourProgressResponse struct {
	TourID     string            `json:"tour_id"`
	Phase      domain.TourPhase  `json:"phase"`
	Current    *WaypointResponse `json:"current,omitempty"`
	Next       *WaypointResponse `json:"next,omitempty"`
	Completion int               `json:"completion"` // процент, 0-100
}

// WaypointResponse - остановка тура для клиента
type WaypointResponse struct {
	ID        string  `json:"id"`
	Order     int     `json:"order"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Radius    float64 `json:"radius"`
	HasTrophy bool    `json:"has_trophy"`
}

// NewWaypointResponse переводит доменную остановку в ответ
func NewWaypointResponse(w *domain.Waypoint) *WaypointResponse {
	if w == nil {
		return nil
	}
	return &WaypointResponse{
		ID:        w.ID.String(),
		Order:     w.Order,
		Name:      w.Name,
		Lat:       w.Lat,
		Lon:       w.Lon,
		Radius:    w.Radius,
		HasTrophy: w.HasTrophy,
	}
}
