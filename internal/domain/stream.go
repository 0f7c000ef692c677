package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с mobile gateway)
const (
	StreamPositionUpdates  = "stream:navigation:position"
	StreamNavigationFrames = "stream:navigation:frames"
)

// PositionEvent - входящее обновление позиции из стрима
type PositionEvent struct {
	SessionID uuid.UUID `json:"session_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Bearing   *float64  `json:"bearing,omitempty"`
}

// FrameEvent - исходящий навигационный кадр
type FrameEvent struct {
	SessionID uuid.UUID       `json:"session_id"`
	Frame     NavigationFrame `json:"frame"`
	Error     string          `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis stream, Data содержит JSON события
type StreamMessage struct {
	ID   string
	Data string
}
