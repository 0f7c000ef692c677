package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/errors"
)

type visitRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVisitRepository(db *DB) repository.VisitRepository {
	return &visitRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// RecordVisit сохраняет посещение. Повторная запись той же пары
// тур/остановка не является ошибкой.
func (r *visitRepository) RecordVisit(ctx context.Context, tourID, waypointID uuid.UUID) error {
	query := `
		INSERT INTO visits (tour_id, waypoint_id, visited_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (tour_id, waypoint_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, tourID, waypointID)
	if err != nil {
		r.logger.Error("Failed to record visit",
			zap.String("tour_id", tourID.String()),
			zap.String("waypoint_id", waypointID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *visitRepository) GetVisited(ctx context.Context, tourID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT waypoint_id
		FROM visits
		WHERE tour_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, tourID)
	if err != nil {
		r.logger.Error("Failed to get visited waypoints", zap.String("tour_id", tourID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var visited []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.logger.Error("Failed to scan visit", zap.Error(err))
			continue
		}
		visited = append(visited, id)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate visits", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return visited, nil
}
