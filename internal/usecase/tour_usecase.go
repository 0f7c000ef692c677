package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/errors"
)

// TourProgressionUseCase управляет активными прохождениями туров.
// Одно прохождение на тур; состояние живёт в памяти на время тура,
// посещения дополнительно пишутся в хранилище.
type TourProgressionUseCase struct {
	tourRepo  repository.TourRepository
	visitRepo repository.VisitRepository
	logger    *zap.Logger

	mu     sync.Mutex
	active map[uuid.UUID]*TourProgress
}

// NewTourProgressionUseCase - создание нового TourProgressionUseCase
func NewTourProgressionUseCase(
	tourRepo repository.TourRepository,
	visitRepo repository.VisitRepository,
	logger *zap.Logger,
) *TourProgressionUseCase {
	return &TourProgressionUseCase{
		tourRepo:  tourRepo,
		visitRepo: visitRepo,
		logger:    logger,
		active:    make(map[uuid.UUID]*TourProgress),
	}
}

// Activate загружает тур и его посещения и инициализирует машину состояний
func (uc *TourProgressionUseCase) Activate(ctx context.Context, tourID uuid.UUID) (*TourProgress, error) {
	tour, err := uc.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		uc.logger.Error("Failed to load tour", zap.String("tour_id", tourID.String()), zap.Error(err))
		return nil, err
	}
	if tour == nil {
		return nil, errors.ErrTourNotFound
	}

	visited, err := uc.visitRepo.GetVisited(ctx, tourID)
	if err != nil {
		// Посещения восстановим в следующий раз, тур активируем без них
		uc.logger.Warn("Failed to load visits, starting with empty set",
			zap.String("tour_id", tourID.String()),
			zap.Error(err))
		visited = nil
	}

	progress := NewTourProgress()
	progress.Initialize(tour.Waypoints, visited)

	uc.mu.Lock()
	uc.active[tourID] = progress
	uc.mu.Unlock()

	uc.logger.Info("Tour activated",
		zap.String("tour_id", tourID.String()),
		zap.Int("waypoints", len(tour.Waypoints)),
		zap.Int("visited", len(visited)),
		zap.String("phase", string(progress.Phase)))

	return progress, nil
}

// Progress возвращает активное прохождение тура
func (uc *TourProgressionUseCase) Progress(tourID uuid.UUID) (*TourProgress, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	progress, ok := uc.active[tourID]
	if !ok {
		return nil, errors.ErrTourNotActive
	}
	return progress, nil
}

// MarkCurrentVisited отмечает текущую остановку посещённой и уведомляет
// хранилище. Ошибка записи логируется и не откатывает переход:
// состояние посещений eventually-consistent с базой.
func (uc *TourProgressionUseCase) MarkCurrentVisited(ctx context.Context, tourID uuid.UUID) (*TourProgress, error) {
	progress, err := uc.Progress(tourID)
	if err != nil {
		return nil, err
	}

	current := progress.Current
	progress.MarkCurrentVisited()

	if current != nil {
		if err := uc.visitRepo.RecordVisit(ctx, tourID, current.ID); err != nil {
			uc.logger.Error("Failed to persist visit",
				zap.String("tour_id", tourID.String()),
				zap.String("waypoint_id", current.ID.String()),
				zap.Error(err))
		}
	}

	return progress, nil
}

// Advance переходит к следующей остановке
func (uc *TourProgressionUseCase) Advance(ctx context.Context, tourID uuid.UUID) (*TourProgress, error) {
	progress, err := uc.Progress(tourID)
	if err != nil {
		return nil, err
	}

	progress.Advance()

	if progress.Phase == domain.PhaseCompleted {
		uc.logger.Info("Tour completed", zap.String("tour_id", tourID.String()))
	}

	return progress, nil
}

// Deactivate убирает прохождение из памяти
func (uc *TourProgressionUseCase) Deactivate(tourID uuid.UUID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.active, tourID)
}
