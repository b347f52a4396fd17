package geo

import (
	"math"
	"strings"
)

// Tile addresses a web-mercator map tile.
type Tile struct {
	Zoom   int
	Column int
	Row    int
}

// TileXY returns the tile containing c at the given zoom level.
func TileXY(c Coordinate, zoom int) Tile {
	n := 1 << zoom
	latRad := c.Lat * math.Pi / 180

	x := int(math.Floor((c.Lon + 180) / 360 * float64(n)))
	y := int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * float64(n)))

	return Tile{Zoom: zoom, Column: clamp(x, 0, n-1), Row: clamp(y, 0, n-1)}
}

// Quadkey encodes the tile as a quadkey string, one digit per zoom level.
func (t Tile) Quadkey() string {
	var b strings.Builder
	for i := t.Zoom; i > 0; i-- {
		digit := byte('0')
		mask := 1 << (i - 1)
		if t.Column&mask != 0 {
			digit++
		}
		if t.Row&mask != 0 {
			digit += 2
		}
		b.WriteByte(digit)
	}
	return b.String()
}

// Quadkey returns the quadkey of the tile containing c at zoom.
func Quadkey(c Coordinate, zoom int) string {
	return TileXY(c, zoom).Quadkey()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
