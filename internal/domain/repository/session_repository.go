package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tour-navigation/internal/domain"
)

// SessionRepository - хранилище снимков навигационных сессий
type SessionRepository interface {
	// Save сохраняет снимок сессии
	Save(ctx context.Context, session *domain.NavigationSession) error

	// Get возвращает снимок сессии, (nil, nil) если не найден
	Get(ctx context.Context, id uuid.UUID) (*domain.NavigationSession, error)

	// Delete удаляет снимок сессии
	Delete(ctx context.Context, id uuid.UUID) error
}
