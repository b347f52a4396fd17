package isoline

import (
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/polyline"
)

// Response is an isoline calculation result.
type Response struct {
	Departure *Stop     `json:"departure,omitempty"`
	Arrival   *Stop     `json:"arrival,omitempty"`
	Isolines  []Isoline `json:"isolines"`
	Notices   []Notice  `json:"notices,omitempty"`
}

// Stop is the matched center of the calculation.
type Stop struct {
	Time  string `json:"time,omitempty"`
	Place struct {
		Type             string          `json:"type"`
		Location         geo.Coordinate  `json:"location"`
		OriginalLocation *geo.Coordinate `json:"originalLocation,omitempty"`
	} `json:"place"`
}

// Isoline is the reachable area for one range value.
type Isoline struct {
	Range    Range     `json:"range"`
	Polygons []Polygon `json:"polygons"`
}

// Range echoes the requested range.
type Range struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Polygon is an area encoded as flexible polylines.
type Polygon struct {
	Outer string   `json:"outer"`
	Inner []string `json:"inner,omitempty"`
}

// OuterRing decodes the outer boundary.
func (p Polygon) OuterRing() ([]geo.Coordinate, error) {
	return decodeRing(p.Outer)
}

// InnerRings decodes the holes of the polygon.
func (p Polygon) InnerRings() ([][]geo.Coordinate, error) {
	rings := make([][]geo.Coordinate, 0, len(p.Inner))
	for _, encoded := range p.Inner {
		ring, err := decodeRing(encoded)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}
	return rings, nil
}

func decodeRing(encoded string) ([]geo.Coordinate, error) {
	points, err := polyline.Decode(encoded)
	if err != nil {
		return nil, err
	}
	ring := make([]geo.Coordinate, len(points))
	for i, p := range points {
		ring[i] = geo.Coordinate{Lat: p.Lat, Lon: p.Lon}
	}
	return ring, nil
}

// Notice reports a problem with the calculation.
type Notice struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Severity string `json:"severity,omitempty"`
}
