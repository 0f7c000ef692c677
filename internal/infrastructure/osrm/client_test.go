package osrm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/pkg/geo"
)

var (
	testStart = domain.GeoPoint{Lat: 53.5225, Lon: 8.1083}
	testEnd   = domain.GeoPoint{Lat: 53.5142, Lon: 8.1428}
)

func okResponse() routeResponse {
	points := [][2]float64{
		{53.5225, 8.1083},
		{53.5200, 8.1200},
		{53.5170, 8.1300},
		{53.5142, 8.1428},
	}

	return routeResponse{
		Code: "Ok",
		Routes: []osrmRoute{
			{
				Distance: 2600.0,
				Duration: 1850.0,
				Geometry: geo.EncodePolyline(points, geo.PrecisionPolyline5),
				Legs: []osrmLeg{
					{
						Steps: []osrmStep{
							{
								Distance: 900,
								Duration: 640,
								Name:     "Jadeallee",
								Maneuver: osrmManeuver{Type: "depart", Location: []float64{8.1083, 53.5225}},
							},
							{
								Distance: 1700,
								Duration: 1210,
								Name:     "Banter Weg",
								Maneuver: osrmManeuver{Type: "turn", Modifier: "left", Location: []float64{8.1200, 53.5200}},
							},
							{
								Maneuver: osrmManeuver{Type: "arrive", Location: []float64{8.1428, 53.5142}},
							},
						},
					},
				},
			},
		},
	}
}

func newTestClient(mirrors []string) *client {
	cfg := &config.RoutingConfig{
		Mirrors:        mirrors,
		Profiles:       []string{"bike", "foot"},
		RequestTimeout: 2 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_TryRoute(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		var requestedPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(okResponse())
		}))
		defer server.Close()

		c := newTestClient([]string{server.URL})

		route, err := c.TryRoute(context.Background(), testStart, testEnd)
		require.NoError(t, err)
		require.NotNil(t, route)

		// bike пробуется раньше foot
		assert.Contains(t, requestedPath, "/route/v1/bike/")

		assert.Equal(t, domain.RouteStatusSuccess, route.Status)
		assert.Equal(t, domain.RouteSourceRemote, route.Source)
		assert.GreaterOrEqual(t, len(route.Points), 2)
		assert.Equal(t, testStart.Lat, route.Points[0].Lat)
		assert.Equal(t, testEnd.Lon, route.End().Lon)
		assert.Equal(t, 2600.0, route.Distance)

		require.NotEmpty(t, route.Instructions)
		assert.Equal(t, domain.InstructionDepart, route.Instructions[0].Type)
		assert.Equal(t, 0, route.Instructions[0].Index)
		last := route.Instructions[len(route.Instructions)-1]
		assert.Equal(t, domain.InstructionArrive, last.Type)
		assert.Equal(t, len(route.Points)-1, last.Index)
	})

	t.Run("falls back to next mirror", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer failing.Close()

		working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(okResponse())
		}))
		defer working.Close()

		c := newTestClient([]string{failing.URL, working.URL})

		route, err := c.TryRoute(context.Background(), testStart, testEnd)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(route.Points), 2)
	})

	t.Run("corrupt geometry falls back to next mirror", func(t *testing.T) {
		corrupt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := okResponse()
			// Геометрия оборвана посреди varint-чанка
			resp.Routes[0].Geometry = "_p~iF"
			json.NewEncoder(w).Encode(resp)
		}))
		defer corrupt.Close()

		working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(okResponse())
		}))
		defer working.Close()

		c := newTestClient([]string{corrupt.URL, working.URL})

		route, err := c.TryRoute(context.Background(), testStart, testEnd)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(route.Points), 2)
	})

	t.Run("non-ok code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(routeResponse{Code: "NoRoute"})
		}))
		defer server.Close()

		c := newTestClient([]string{server.URL})

		route, err := c.TryRoute(context.Background(), testStart, testEnd)
		assert.Error(t, err)
		assert.Nil(t, route)
	})

	t.Run("empty routes list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(routeResponse{Code: "Ok"})
		}))
		defer server.Close()

		c := newTestClient([]string{server.URL})

		route, err := c.TryRoute(context.Background(), testStart, testEnd)
		assert.Error(t, err)
		assert.Nil(t, route)
	})

	t.Run("all mirrors down", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		server.Close() // connection refused

		c := newTestClient([]string{server.URL})

		route, err := c.TryRoute(context.Background(), testStart, testEnd)
		assert.Error(t, err)
		assert.Nil(t, route)
	})

	t.Run("invalid coordinates rejected without request", func(t *testing.T) {
		c := newTestClient([]string{"http://127.0.0.1:0"})

		route, err := c.TryRoute(context.Background(), domain.GeoPoint{Lat: 120, Lon: 8}, testEnd)
		assert.Error(t, err)
		assert.Nil(t, route)
	})
}

func TestManeuverType(t *testing.T) {
	assert.Equal(t, domain.InstructionDepart, maneuverType("depart", ""))
	assert.Equal(t, domain.InstructionArrive, maneuverType("arrive", ""))
	assert.Equal(t, domain.InstructionTurnLeft, maneuverType("turn", "left"))
	assert.Equal(t, domain.InstructionSharpRight, maneuverType("turn", "sharp right"))
	assert.Equal(t, domain.InstructionStraight, maneuverType("continue", "straight"))
	assert.Equal(t, domain.InstructionRoundabout, maneuverType("rotary", ""))
	assert.Equal(t, domain.InstructionContinue, maneuverType("unknown maneuver", ""))
}
