package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/errors"
)

type tourRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTourRepository(db *DB) repository.TourRepository {
	return &tourRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *tourRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	query := `
		SELECT id, name
		FROM tours
		WHERE id = $1
	`

	var tour domain.Tour
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tour.ID, &tour.Name)

	if err == sql.ErrNoRows {
		return nil, errors.ErrTourNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get tour by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	waypoints, err := r.getWaypoints(ctx, id)
	if err != nil {
		return nil, err
	}
	tour.Waypoints = waypoints

	return &tour, nil
}

// getWaypoints возвращает остановки тура, отсортированные по порядку обхода
func (r *tourRepository) getWaypoints(ctx context.Context, tourID uuid.UUID) ([]domain.Waypoint, error) {
	query := `
		SELECT id, tour_id, position, name, lat, lon, radius, has_trophy
		FROM waypoints
		WHERE tour_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, tourID)
	if err != nil {
		r.logger.Error("Failed to get waypoints", zap.String("tour_id", tourID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var waypoints []domain.Waypoint
	for rows.Next() {
		var w domain.Waypoint
		var radius sql.NullFloat64

		err := rows.Scan(&w.ID, &w.TourID, &w.Order, &w.Name, &w.Lat, &w.Lon, &radius, &w.HasTrophy)
		if err != nil {
			r.logger.Error("Failed to scan waypoint", zap.Error(err))
			continue
		}

		w.Radius = domain.DefaultWaypointRadius
		if radius.Valid && radius.Float64 > 0 {
			w.Radius = radius.Float64
		}

		waypoints = append(waypoints, w)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate waypoints", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return waypoints, nil
}
