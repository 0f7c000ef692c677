package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolylineRoundTrip(t *testing.T) {
	t.Run("google reference example", func(t *testing.T) {
		// Reference sequence from the polyline algorithm documentation
		points := [][2]float64{
			{38.5, -120.2},
			{40.7, -120.95},
			{43.252, -126.453},
		}

		encoded := EncodePolyline(points, PrecisionPolyline5)
		assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

		decoded := DecodePolyline(encoded, PrecisionPolyline5)
		require.Len(t, decoded, len(points))
		for i := range points {
			assert.InDelta(t, points[i][0], decoded[i][0], 1e-5)
			assert.InDelta(t, points[i][1], decoded[i][1], 1e-5)
		}
	})

	t.Run("random sequence precision 5", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))

		points := make([][2]float64, 1000)
		for i := range points {
			points[i] = [2]float64{
				rng.Float64()*180 - 90,
				rng.Float64()*360 - 180,
			}
		}

		decoded := DecodePolyline(EncodePolyline(points, PrecisionPolyline5), PrecisionPolyline5)
		require.Len(t, decoded, len(points))
		for i := range points {
			assert.InDelta(t, points[i][0], decoded[i][0], 1e-5)
			assert.InDelta(t, points[i][1], decoded[i][1], 1e-5)
		}
	})

	t.Run("random sequence precision 6", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))

		points := make([][2]float64, 500)
		for i := range points {
			points[i] = [2]float64{
				rng.Float64()*180 - 90,
				rng.Float64()*360 - 180,
			}
		}

		decoded := DecodePolyline(EncodePolyline(points, PrecisionPolyline6), PrecisionPolyline6)
		require.Len(t, decoded, len(points))
		for i := range points {
			assert.InDelta(t, points[i][0], decoded[i][0], 1e-6)
			assert.InDelta(t, points[i][1], decoded[i][1], 1e-6)
		}
	})

	t.Run("empty string decodes to nil", func(t *testing.T) {
		assert.Nil(t, DecodePolyline("", PrecisionPolyline5))
	})

	t.Run("truncated input keeps decoded prefix", func(t *testing.T) {
		// Обрыв посреди чанка второй точки: последний байт несёт бит
		// продолжения, полной остаётся только первая пара
		decoded := DecodePolyline("_p~iF~ps|U_", PrecisionPolyline5)

		require.Len(t, decoded, 1)
		assert.InDelta(t, 38.5, decoded[0][0], 1e-5)
		assert.InDelta(t, -120.2, decoded[0][1], 1e-5)
	})

	t.Run("truncated input without any full pair decodes to nil", func(t *testing.T) {
		// Полный чанк широты, долгота отсутствует
		assert.Nil(t, DecodePolyline("_p~iF", PrecisionPolyline5))
	})
}
