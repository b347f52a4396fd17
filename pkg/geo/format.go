package geo

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FormatFloat renders f with the fewest digits that round-trip.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatCoordinate renders c as "lat,lon" without rounding.
func FormatCoordinate(c Coordinate) string {
	return FormatFloat(c.Lat) + "," + FormatFloat(c.Lon)
}

// FormatBoundingBox renders b as "tlLat,tlLon;brLat,brLon".
func FormatBoundingBox(b BoundingBox) string {
	return FormatCoordinate(b.TopLeft) + ";" + FormatCoordinate(b.BottomRight)
}

// ParseBoundingBox is the inverse of FormatBoundingBox.
func ParseBoundingBox(s string) (BoundingBox, error) {
	corners := strings.Split(s, ";")
	if len(corners) != 2 {
		return BoundingBox{}, fmt.Errorf("bounding box %q: expected two corners", s)
	}
	tl, err := ParseCoordinate(corners[0])
	if err != nil {
		return BoundingBox{}, fmt.Errorf("bounding box top-left: %w", err)
	}
	br, err := ParseCoordinate(corners[1])
	if err != nil {
		return BoundingBox{}, fmt.Errorf("bounding box bottom-right: %w", err)
	}
	return BoundingBox{TopLeft: tl, BottomRight: br}, nil
}

// ParseCoordinate parses a "lat,lon" pair.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("coordinate %q: expected lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q longitude: %w", s, err)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// Area renders b as a "bbox:west,south,east,north" area filter.
func (b BoundingBox) Area() string {
	return "bbox:" + strings.Join([]string{
		FormatFloat(b.West()),
		FormatFloat(b.South()),
		FormatFloat(b.East()),
		FormatFloat(b.North()),
	}, ",")
}

// FormatCorridor pairs values two at a time as lat,lon and joins the pairs
// with ";". An odd trailing value is dropped.
func FormatCorridor(values []float64) string {
	n := len(values) - len(values)%2
	if n == 0 {
		return ""
	}
	pairs := make([]string, 0, n/2)
	for i := 0; i < n; i += 2 {
		pairs = append(pairs, FormatFloat(values[i])+","+FormatFloat(values[i+1]))
	}
	return strings.Join(pairs, ";")
}

// CorridorPoints converts coordinates into the flat list FormatCorridor takes.
func CorridorPoints(points ...Coordinate) []float64 {
	out := make([]float64, 0, len(points)*2)
	for _, p := range points {
		out = append(out, p.Lat, p.Lon)
	}
	return out
}

// Join renders each value's token and joins them with sep. Empty tokens are
// skipped, so the result never has leading, trailing or doubled separators.
func Join[T ~string | ~int](values []T, sep string) string {
	tokens := make([]string, 0, len(values))
	for _, v := range values {
		if tok := token(v); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return strings.Join(tokens, sep)
}

// token reads the underlying value so String methods on named types do not
// leak display names into the wire format.
func token[T ~string | ~int](v T) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return strconv.FormatInt(rv.Int(), 10)
}

// FormatStationIDs joins station ids with "," and never leaves a trailing
// separator.
func FormatStationIDs(ids []string) string {
	var b strings.Builder
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		b.WriteString(id)
		b.WriteByte(',')
	}
	return strings.TrimSuffix(b.String(), ",")
}

// FormatConsumptionTable flattens pairs as consumption,speed behind the fixed
// leading zero the EV table format requires.
func FormatConsumptionTable(pairs []ConsumptionPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, 1+len(pairs)*2)
	parts = append(parts, "0")
	for _, p := range pairs {
		parts = append(parts, FormatFloat(p.Consumption), FormatFloat(p.Speed))
	}
	return strings.Join(parts, ",")
}

// FormatProximity renders "lat,lon,radius".
func FormatProximity(c Coordinate, radius int) string {
	return FormatCoordinate(c) + "," + strconv.Itoa(radius)
}

// FormatCircle renders a "circle:lat,lon;r=radius" area filter.
func FormatCircle(c Coordinate, radius int) string {
	return "circle:" + FormatCoordinate(c) + ";r=" + strconv.Itoa(radius)
}
