package geo

import (
	"math"
	"strings"
)

// Precision 5 соответствует формату Google, 6 - polyline6 из OSRM.
const (
	PrecisionPolyline5 = 5
	PrecisionPolyline6 = 6
)

// DecodePolyline декодирует polyline-строку в последовательность [lat, lon].
// Оборванная строка (последний чанк без завершающего байта) не ошибка:
// возвращаются пары, декодированные до обрыва.
func DecodePolyline(encoded string, precision int) [][2]float64 {
	factor := math.Pow10(precision)

	var points [][2]float64
	index, lat, lon := 0, 0, 0

	for index < len(encoded) {
		dLat, next, ok := decodeDiff(encoded, index)
		if !ok {
			return points
		}
		lat += dLat

		dLon, next, ok := decodeDiff(encoded, next)
		if !ok {
			return points
		}
		lon += dLon

		index = next
		points = append(points, [2]float64{float64(lat) / factor, float64(lon) / factor})
	}

	return points
}

// decodeDiff читает один varint-чанк, начиная с index.
// ok == false для строки, оборванной посреди чанка.
func decodeDiff(encoded string, index int) (diff, next int, ok bool) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}

// EncodePolyline кодирует последовательность [lat, lon] в polyline-строку
func EncodePolyline(points [][2]float64, precision int) string {
	factor := math.Pow10(precision)

	var encoded strings.Builder
	prevLat, prevLon := 0, 0

	for _, p := range points {
		lat := int(math.Round(p[0] * factor))
		lon := int(math.Round(p[1] * factor))

		encodeDiff(&encoded, lat-prevLat)
		encodeDiff(&encoded, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return encoded.String()
}

func encodeDiff(buf *strings.Builder, diff int) {
	if diff < 0 {
		diff = ^(diff << 1)
	} else {
		diff <<= 1
	}

	for diff >= 0x20 {
		buf.WriteByte(byte((diff&0x1f)|0x20) + 63)
		diff >>= 5
	}
	buf.WriteByte(byte(diff) + 63)
}
