package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/usecase"
	"github.com/tour-navigation/internal/worker"
)

// PositionWorker обрабатывает поток живых позиций: каждое обновление
// прогоняется через навигацию, а получившийся кадр публикуется в
// ответный стрим
type PositionWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	navigationUC *usecase.NavigationUseCase
	consumerName string
}

// NewPositionWorker создает новый PositionWorker
func NewPositionWorker(
	streamRepo repository.StreamRepository,
	navigationUC *usecase.NavigationUseCase,
	consumerGroup string,
	logger *zap.Logger,
) *PositionWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &PositionWorker{
		BaseWorker:   worker.NewBaseWorker("navigation-position", consumerGroup, logger),
		streamRepo:   streamRepo,
		navigationUC: navigationUC,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *PositionWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting PositionWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPositionUpdates, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamPositionUpdates, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно сообщение; битые сообщения
// подтверждаются, чтобы не застревать в pending
func (w *PositionWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.PositionEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse position event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	start := time.Now()
	position := domain.GeoPoint{Lat: event.Lat, Lon: event.Lon, Bearing: event.Bearing}

	frame, err := w.navigationUC.OnPositionUpdate(ctx, event.SessionID, position)

	frameEvent := domain.FrameEvent{
		SessionID: event.SessionID,
		Frame:     frame,
	}
	if err != nil {
		logger.Warn("Failed to process position update",
			zap.String("session_id", event.SessionID.String()),
			zap.Error(err))
		frameEvent.Error = err.Error()
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamNavigationFrames, frameEvent); err != nil {
		logger.Error("Failed to publish navigation frame",
			zap.String("session_id", event.SessionID.String()),
			zap.Error(err))
		// Сообщение не подтверждаем - будет доставлено повторно
		return
	}

	w.ack(ctx, msg.ID)

	logger.Debug("Position update processed",
		zap.String("session_id", event.SessionID.String()),
		zap.Duration("duration", time.Since(start)))
}

func (w *PositionWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamPositionUpdates, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", messageID), zap.Error(err))
	}
}
