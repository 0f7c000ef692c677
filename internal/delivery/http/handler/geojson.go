package handler

import (
	"encoding/json"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/tour-navigation/internal/domain"
)

// routeGeometry кодирует точки маршрута в GeoJSON LineString
// (координаты в порядке lon, lat)
func routeGeometry(points []domain.GeoPoint) (json.RawMessage, error) {
	coords := make([]geom.Coord, len(points))
	for i, p := range points {
		coords[i] = geom.Coord{p.Lon, p.Lat}
	}

	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords(coords); err != nil {
		return nil, err
	}

	return geojson.Marshal(line)
}
