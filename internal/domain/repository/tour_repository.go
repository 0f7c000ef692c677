package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tour-navigation/internal/domain"
)

// TourRepository - доступ к определениям туров
type TourRepository interface {
	// GetByID возвращает тур с остановками, отсортированными по порядку
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error)
}

// VisitRepository - персистентное хранилище посещений остановок.
// Ошибка записи логируется вызывающим и не откатывает состояние тура.
type VisitRepository interface {
	// RecordVisit сохраняет посещение (идемпотентно)
	RecordVisit(ctx context.Context, tourID, waypointID uuid.UUID) error

	// GetVisited возвращает ID посещённых остановок тура
	GetVisited(ctx context.Context, tourID uuid.UUID) ([]uuid.UUID, error)
}
