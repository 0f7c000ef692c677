package domain

import "github.com/google/uuid"

// DefaultWaypointRadius - радиус прибытия по умолчанию, метры
const DefaultWaypointRadius = 150.0

// Waypoint - фиксированная остановка тура
type Waypoint struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TourID    uuid.UUID `json:"tour_id" db:"tour_id"`
	Order     int       `json:"order" db:"position"` // 1-based, уникален в рамках тура
	Name      string    `json:"name" db:"name"`
	Lat       float64   `json:"lat" db:"lat"`
	Lon       float64   `json:"lon" db:"lon"`
	Radius    float64   `json:"radius" db:"radius"` // метры
	HasTrophy bool      `json:"has_trophy" db:"has_trophy"`
}

// Tour - тур с упорядоченным списком остановок
type Tour struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Waypoints []Waypoint `json:"waypoints"`
}

// TourPhase - фаза прохождения тура
type TourPhase string

const (
	PhaseNotStarted TourPhase = "not_started"
	PhaseEnRoute    TourPhase = "en_route"
	PhaseAtLocation TourPhase = "at_location"
	PhaseCompleted  TourPhase = "completed"
)

// Visit - запись о посещении остановки
type Visit struct {
	TourID     uuid.UUID `json:"tour_id" db:"tour_id"`
	WaypointID uuid.UUID `json:"waypoint_id" db:"waypoint_id"`
}
