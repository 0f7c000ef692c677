package navigation_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/usecase"
	workernav "github.com/tour-navigation/internal/worker/navigation"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func newNavigationUC() *usecase.NavigationUseCase {
	synthetic := usecase.NewSyntheticRouteGenerator()
	acquisition := usecase.NewRouteAcquisitionUseCase(usecase.NewRouteCache(10), nil, synthetic, zap.NewNop())
	cfg := config.NavigationConfig{
		OffRouteThreshold: 30,
		ArrivalRadius:     30,
		RouteCacheSize:    10,
		SessionTTL:        time.Hour,
	}
	return usecase.NewNavigationUseCase(acquisition, synthetic, usecase.NewRouteMatcher(), nil, cfg, zap.NewNop())
}

func TestPositionWorker_Name(t *testing.T) {
	w := workernav.NewPositionWorker(&MockStreamRepository{}, newNavigationUC(), "test-group", zap.NewNop())

	assert.Equal(t, "navigation-position", w.Name())
}

func TestPositionWorker_ProcessesPositionEvent(t *testing.T) {
	navigationUC := newNavigationUC()

	origin := domain.GeoPoint{Lat: 53.5200, Lon: 8.1000}
	dest := domain.GeoPoint{Lat: 53.5390, Lon: 8.1190}
	sessionID, _, err := navigationUC.Start(context.Background(), origin, dest)
	require.NoError(t, err)
	defer navigationUC.Stop(context.Background(), sessionID)

	msgChan := make(chan domain.StreamMessage, 1)
	acked := make(chan struct{}, 1)

	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPositionUpdates, "test-group").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamPositionUpdates, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	mockStream.On("PublishToStream", mock.Anything, domain.StreamNavigationFrames, mock.MatchedBy(func(data interface{}) bool {
		event, ok := data.(domain.FrameEvent)
		return ok && event.SessionID == sessionID && event.Error == ""
	})).Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamPositionUpdates, "test-group", "1-0").
		Run(func(args mock.Arguments) { acked <- struct{}{} }).
		Return(nil)

	w := workernav.NewPositionWorker(mockStream, navigationUC, "test-group", zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	payload, err := json.Marshal(domain.PositionEvent{SessionID: sessionID, Lat: origin.Lat, Lon: origin.Lon})
	require.NoError(t, err)
	msgChan <- domain.StreamMessage{ID: "1-0", Data: string(payload)}

	select {
	case <-acked:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not acknowledged")
	}

	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	mockStream.AssertCalled(t, "PublishToStream", mock.Anything, domain.StreamNavigationFrames, mock.Anything)
}

func TestPositionWorker_UnknownSessionPublishesError(t *testing.T) {
	msgChan := make(chan domain.StreamMessage, 1)
	acked := make(chan struct{}, 1)

	mockStream := &MockStreamRepository{}
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPositionUpdates, "test-group").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamPositionUpdates, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	mockStream.On("PublishToStream", mock.Anything, domain.StreamNavigationFrames, mock.MatchedBy(func(data interface{}) bool {
		event, ok := data.(domain.FrameEvent)
		return ok && event.Error != ""
	})).Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamPositionUpdates, "test-group", "1-0").
		Run(func(args mock.Arguments) { acked <- struct{}{} }).
		Return(nil)

	w := workernav.NewPositionWorker(mockStream, newNavigationUC(), "test-group", zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	payload, err := json.Marshal(domain.PositionEvent{SessionID: uuid.New(), Lat: 53.52, Lon: 8.10})
	require.NoError(t, err)
	msgChan <- domain.StreamMessage{ID: "1-0", Data: string(payload)}

	select {
	case <-acked:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not acknowledged")
	}

	require.NoError(t, w.Stop())
	<-done
}
