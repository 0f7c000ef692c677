package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/errors"
	"github.com/tour-navigation/internal/pkg/geo"
)

// Маршрут из <= 3 точек не лучше синтетического и не вытесняет
// уже удерживаемый кадр
const minUsefulRoutePoints = 3

// NavigationUseCase - фасад навигации. Держит по одному активному
// маршруту на сессию, перезапрашивает его при сходе с маршрута и
// отдаёт NavigationFrame на каждое обновление позиции.
//
// Получение маршрута всегда уходит в фоновую горутину: обновления
// позиции читают последний снимок маршрута и никогда не ждут сеть.
type NavigationUseCase struct {
	acquisition *RouteAcquisitionUseCase
	synthetic   *SyntheticRouteGenerator
	matcher     *RouteMatcher
	sessionRepo repository.SessionRepository
	cfg         config.NavigationConfig
	logger      *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*navSession
}

// navSession - состояние одной навигационной сессии.
// generation отсекает устаревшие результаты: поздний ответ сети не
// должен перезаписать маршрут, запрошенный позже него.
type navSession struct {
	mu           sync.Mutex
	id           uuid.UUID
	destination  domain.GeoPoint
	route        *domain.Route
	inFlight     bool
	generation   uint64
	lastPosition *domain.GeoPoint
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewNavigationUseCase - создание нового NavigationUseCase
func NewNavigationUseCase(
	acquisition *RouteAcquisitionUseCase,
	synthetic *SyntheticRouteGenerator,
	matcher *RouteMatcher,
	sessionRepo repository.SessionRepository,
	cfg config.NavigationConfig,
	logger *zap.Logger,
) *NavigationUseCase {
	return &NavigationUseCase{
		acquisition: acquisition,
		synthetic:   synthetic,
		matcher:     matcher,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger,
		sessions:    make(map[uuid.UUID]*navSession),
	}
}

// Start открывает сессию до destination. Синтетический кадр отдаётся
// сразу, без ожидания сети; настоящий маршрут подменит его асинхронно,
// если окажется богаче синтетического.
func (uc *NavigationUseCase) Start(ctx context.Context, origin, destination domain.GeoPoint) (uuid.UUID, domain.NavigationFrame, error) {
	if !geo.ValidateCoordinates(origin.Lat, origin.Lon) || !geo.ValidateCoordinates(destination.Lat, destination.Lon) {
		return uuid.Nil, domain.NavigationFrame{}, errors.ErrInvalidCoordinates
	}

	sessionCtx, cancel := context.WithCancel(context.Background())

	s := &navSession{
		id:          uuid.New(),
		destination: destination,
		route:       uc.synthetic.Generate(origin, destination),
		inFlight:    true,
		generation:  1,
		ctx:         sessionCtx,
		cancel:      cancel,
	}

	uc.mu.Lock()
	uc.sessions[s.id] = s
	uc.mu.Unlock()

	go uc.acquireAsync(s, origin, destination, 1)

	s.mu.Lock()
	frame := uc.buildFrame(s, origin)
	s.mu.Unlock()

	uc.logger.Info("Navigation session started",
		zap.String("session_id", s.id.String()),
		zap.Float64("dest_lat", destination.Lat),
		zap.Float64("dest_lon", destination.Lon))

	uc.saveSnapshot(ctx, s, &origin)

	return s.id, frame, nil
}

// OnPositionUpdate обрабатывает живую позицию и возвращает свежий кадр.
// Не блокируется на сети: при сходе с маршрута (>порога) запускается
// фоновый перезапрос, а наружу уходит последний годный кадр с флагом
// rerouting. Одновременно в полёте не больше одного запроса на сессию.
func (uc *NavigationUseCase) OnPositionUpdate(ctx context.Context, sessionID uuid.UUID, position domain.GeoPoint) (domain.NavigationFrame, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return domain.NavigationFrame{}, err
	}

	s.mu.Lock()
	s.lastPosition = &position

	match := uc.matcher.Match(position, s.route)
	toDest := geo.Distance(position.Lat, position.Lon, s.destination.Lat, s.destination.Lon)

	if toDest >= uc.cfg.ArrivalRadius && match.LateralDistance > uc.cfg.OffRouteThreshold && !s.inFlight {
		s.inFlight = true
		s.generation++
		uc.logger.Info("Off route, reacquiring",
			zap.String("session_id", sessionID.String()),
			zap.Float64("lateral_distance", match.LateralDistance))
		go uc.acquireAsync(s, position, s.destination, s.generation)
	}

	frame := uc.buildFrame(s, position)
	s.mu.Unlock()

	uc.saveSnapshot(ctx, s, &position)

	return frame, nil
}

// Stop закрывает сессию и отменяет запрос маршрута, если он в полёте
func (uc *NavigationUseCase) Stop(ctx context.Context, sessionID uuid.UUID) error {
	uc.mu.Lock()
	s, ok := uc.sessions[sessionID]
	if ok {
		delete(uc.sessions, sessionID)
	}
	uc.mu.Unlock()

	if !ok {
		return errors.ErrSessionNotFound
	}

	s.cancel()

	if uc.sessionRepo != nil {
		if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
			uc.logger.Warn("Failed to delete session snapshot",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
		}
	}

	uc.logger.Info("Navigation session stopped", zap.String("session_id", sessionID.String()))
	return nil
}

// acquireAsync выполняет получение маршрута в фоне и подменяет
// удерживаемый маршрут, если результат ещё актуален и богаче
// синтетического пути
func (uc *NavigationUseCase) acquireAsync(s *navSession, start, end domain.GeoPoint, generation uint64) {
	route := uc.acquisition.Acquire(s.ctx, start, end)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	if s.generation != generation {
		// Пока ходили в сеть, кто-то запросил новый маршрут
		uc.logger.Debug("Discarding stale route result",
			zap.String("session_id", s.id.String()),
			zap.Uint64("result_generation", generation),
			zap.Uint64("current_generation", s.generation))
		return
	}

	if len(route.Points) > minUsefulRoutePoints {
		s.route = route
	} else {
		uc.logger.Debug("Keeping held route: acquired route not richer than synthetic",
			zap.String("session_id", s.id.String()),
			zap.Int("points", len(route.Points)))
	}
	s.inFlight = false
}

// buildFrame собирает кадр для позиции. Вызывается под s.mu.
func (uc *NavigationUseCase) buildFrame(s *navSession, position domain.GeoPoint) domain.NavigationFrame {
	toDest := geo.Distance(position.Lat, position.Lon, s.destination.Lat, s.destination.Lon)

	if toDest < uc.cfg.ArrivalRadius {
		return domain.NavigationFrame{
			InstructionText: "You have arrived at your destination",
			InstructionType: domain.InstructionArrive,
			RouteGeometry:   s.route.Points,
			Arrived:         true,
			Rerouting:       s.inFlight,
		}
	}

	match := uc.matcher.Match(position, s.route)
	instruction := uc.matcher.NextInstruction(position, match, s.route, uc.cfg.ArrivalRadius)

	return domain.NavigationFrame{
		InstructionText:   instruction.Text,
		InstructionType:   instruction.Type,
		RemainingDistance: match.RemainingDistance,
		RemainingDuration: match.RemainingDistance / domain.WalkingSpeedMPS,
		RouteGeometry:     s.route.Points,
		Arrived:           false,
		Rerouting:         s.inFlight,
	}
}

func (uc *NavigationUseCase) session(id uuid.UUID) (*navSession, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	s, ok := uc.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return s, nil
}

// saveSnapshot - снимок сессии в Redis, best effort
func (uc *NavigationUseCase) saveSnapshot(ctx context.Context, s *navSession, position *domain.GeoPoint) {
	if uc.sessionRepo == nil {
		return
	}

	snapshot := &domain.NavigationSession{
		ID:           s.id,
		Destination:  s.destination,
		LastPosition: position,
		UpdatedAt:    time.Now(),
	}

	if err := uc.sessionRepo.Save(ctx, snapshot); err != nil {
		uc.logger.Warn("Failed to save session snapshot",
			zap.String("session_id", s.id.String()),
			zap.Error(err))
	}
}
