package usecase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tour-navigation/internal/domain"
)

func testWaypoints() []domain.Waypoint {
	return []domain.Waypoint{
		{ID: uuid.New(), Order: 1, Name: "Hafen", Lat: 53.5225, Lon: 8.1083, Radius: 150},
		{ID: uuid.New(), Order: 2, Name: "Rathaus", Lat: 53.5200, Lon: 8.1200, Radius: 150},
		{ID: uuid.New(), Order: 3, Name: "Aquarium", Lat: 53.5142, Lon: 8.1428, Radius: 150},
	}
}

func TestTourProgress_Initialize(t *testing.T) {
	t.Run("fresh tour", func(t *testing.T) {
		waypoints := testWaypoints()

		p := NewTourProgress()
		p.Initialize(waypoints, nil)

		assert.Equal(t, domain.PhaseEnRoute, p.Phase)
		require.NotNil(t, p.Current)
		assert.Equal(t, 1, p.Current.Order)
		require.NotNil(t, p.Next)
		assert.Equal(t, 2, p.Next.Order)
		assert.Equal(t, 0, p.Completion())
	})

	t.Run("waypoints sorted by order", func(t *testing.T) {
		waypoints := testWaypoints()
		shuffled := []domain.Waypoint{waypoints[2], waypoints[0], waypoints[1]}

		p := NewTourProgress()
		p.Initialize(shuffled, nil)

		require.NotNil(t, p.Current)
		assert.Equal(t, 1, p.Current.Order)
	})

	t.Run("partially visited tour resumes", func(t *testing.T) {
		waypoints := testWaypoints()

		p := NewTourProgress()
		p.Initialize(waypoints, []uuid.UUID{waypoints[0].ID})

		assert.Equal(t, domain.PhaseEnRoute, p.Phase)
		require.NotNil(t, p.Current)
		assert.Equal(t, 2, p.Current.Order)
		require.NotNil(t, p.Next)
		assert.Equal(t, 3, p.Next.Order)
		assert.Equal(t, 33, p.Completion())
	})

	t.Run("fully visited tour is completed", func(t *testing.T) {
		waypoints := testWaypoints()
		visited := []uuid.UUID{waypoints[0].ID, waypoints[1].ID, waypoints[2].ID}

		p := NewTourProgress()
		p.Initialize(waypoints, visited)

		assert.Equal(t, domain.PhaseCompleted, p.Phase)
		assert.Nil(t, p.Current)
		assert.Nil(t, p.Next)
		assert.Equal(t, 100, p.Completion())
	})

	t.Run("empty waypoint list stays inert", func(t *testing.T) {
		p := NewTourProgress()
		p.Initialize(nil, nil)

		assert.Equal(t, domain.PhaseNotStarted, p.Phase)
		assert.Nil(t, p.Current)
		assert.Equal(t, 0, p.Completion())

		// Переходы на пустом туре ничего не ломают
		p.MarkCurrentVisited()
		p.Advance()
		assert.Equal(t, domain.PhaseNotStarted, p.Phase)
	})
}

func TestTourProgress_VisitAndAdvance(t *testing.T) {
	waypoints := testWaypoints()

	p := NewTourProgress()
	p.Initialize(waypoints, nil)

	p.MarkCurrentVisited()
	assert.Equal(t, domain.PhaseAtLocation, p.Phase)
	assert.Equal(t, 33, p.Completion())

	p.Advance()
	assert.Equal(t, domain.PhaseEnRoute, p.Phase)
	require.NotNil(t, p.Current)
	assert.Equal(t, 2, p.Current.Order)
	require.NotNil(t, p.Next)
	assert.Equal(t, 3, p.Next.Order)

	// Вторая остановка
	p.MarkCurrentVisited()
	p.Advance()
	assert.Equal(t, 3, p.Current.Order)
	assert.Nil(t, p.Next)
	assert.Equal(t, 67, p.Completion())

	// Последняя остановка завершает тур
	p.MarkCurrentVisited()
	p.Advance()
	assert.Equal(t, domain.PhaseCompleted, p.Phase)
	assert.Nil(t, p.Current)
	assert.Equal(t, 100, p.Completion())
}

func TestTourProgress_MarkVisitedIdempotent(t *testing.T) {
	waypoints := testWaypoints()

	p := NewTourProgress()
	p.Initialize(waypoints, []uuid.UUID{waypoints[0].ID})

	// Текущая (order=2) отмечается дважды: множество не растёт,
	// но переход в AtLocation происходит
	p.MarkCurrentVisited()
	p.MarkCurrentVisited()

	assert.Equal(t, domain.PhaseAtLocation, p.Phase)
	assert.Equal(t, 67, p.Completion())
}
