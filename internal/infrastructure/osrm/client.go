package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tour-navigation/internal/config"
	"github.com/tour-navigation/internal/domain"
	"github.com/tour-navigation/internal/domain/repository"
	"github.com/tour-navigation/internal/pkg/geo"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	mirrors    []string
	profiles   []string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient создает новый клиент для OSRM-совместимых зеркал.
// Зеркала перебираются для каждого профиля по очереди, первый
// пригодный ответ выигрывает.
func NewClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.RouteProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		mirrors:  cfg.Mirrors,
		profiles: cfg.Profiles,
		timeout:  cfg.RequestTimeout,
		logger:   logger,
	}
}

func (c *client) Name() string {
	return "osrm"
}

// TryRoute перебирает пары (профиль, зеркало) до первого пригодного ответа.
// Каждая попытка имеет собственный таймаут; ошибка одной попытки логируется
// и не прерывает перебор.
func (c *client) TryRoute(ctx context.Context, start, end domain.GeoPoint) (*domain.Route, error) {
	if !geo.ValidateCoordinates(start.Lat, start.Lon) || !geo.ValidateCoordinates(end.Lat, end.Lon) {
		return nil, fmt.Errorf("invalid coordinates: (%f,%f) -> (%f,%f)", start.Lat, start.Lon, end.Lat, end.Lon)
	}

	var lastErr error
	for _, profile := range c.profiles {
		for _, mirror := range c.mirrors {
			route, err := c.fetchRoute(ctx, mirror, profile, start, end)
			if err != nil {
				c.logger.Warn("OSRM mirror attempt failed",
					zap.String("mirror", mirror),
					zap.String("profile", profile),
					zap.Error(err))
				lastErr = err
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				continue
			}

			c.logger.Debug("OSRM route acquired",
				zap.String("mirror", mirror),
				zap.String("profile", profile),
				zap.Int("points", len(route.Points)),
				zap.Float64("distance", route.Distance))
			return route, nil
		}
	}

	return nil, fmt.Errorf("all OSRM mirrors failed: %w", lastErr)
}

func (c *client) fetchRoute(ctx context.Context, mirror, profile string, start, end domain.GeoPoint) (*domain.Route, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?steps=true&geometries=polyline&overview=full",
		mirror, profile,
		start.Lon, start.Lat,
		end.Lon, end.Lat,
	)

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OSRM error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var routeResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if routeResp.Code != "Ok" {
		return nil, fmt.Errorf("OSRM returned code: %s", routeResp.Code)
	}
	if len(routeResp.Routes) == 0 {
		return nil, fmt.Errorf("OSRM returned no routes")
	}

	// Первый кандидат считается лучшим
	return convertRoute(&routeResp.Routes[0], start, end)
}
