package matrix

import (
	"encoding/json"
	"time"

	"github.com/wayfarer/wayfarer/pkg/geo"
)

// Region types accepted in a region definition.
const (
	RegionWorld       = "world"
	RegionBoundingBox = "boundingBox"
	RegionCircle      = "circle"
	RegionAutoCircle  = "autoCircle"
)

// Region limits the area the matrix is computed in.
type Region struct {
	Type   string
	Center geo.Coordinate // circle
	Radius int            // circle, meters
	Box    geo.BoundingBox
	Margin int // autoCircle, meters
}

// World returns an unrestricted region. Only some transport modes accept it.
func World() Region {
	return Region{Type: RegionWorld}
}

// Circle returns a circular region.
func Circle(center geo.Coordinate, radius int) Region {
	return Region{Type: RegionCircle, Center: center, Radius: radius}
}

// Box returns a bounding box region.
func Box(b geo.BoundingBox) Region {
	return Region{Type: RegionBoundingBox, Box: b}
}

// AutoCircle returns a circle enclosing all origins and destinations, grown
// by margin meters. A zero margin leaves the service default.
func AutoCircle(margin int) Region {
	return Region{Type: RegionAutoCircle, Margin: margin}
}

type regionJSON struct {
	Type   string          `json:"type"`
	Center *geo.Coordinate `json:"center,omitempty"`
	Radius int             `json:"radius,omitempty"`
	North  *float64        `json:"north,omitempty"`
	South  *float64        `json:"south,omitempty"`
	West   *float64        `json:"west,omitempty"`
	East   *float64        `json:"east,omitempty"`
	Margin int             `json:"margin,omitempty"`
}

// MarshalJSON writes only the fields of r's type.
func (r Region) MarshalJSON() ([]byte, error) {
	out := regionJSON{Type: r.Type}
	switch r.Type {
	case RegionCircle:
		out.Center = &r.Center
		out.Radius = r.Radius
	case RegionBoundingBox:
		north, south, west, east := r.Box.North(), r.Box.South(), r.Box.West(), r.Box.East()
		out.North, out.South, out.West, out.East = &north, &south, &west, &east
	case RegionAutoCircle:
		out.Margin = r.Margin
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a region definition echoed by the service.
func (r *Region) UnmarshalJSON(data []byte) error {
	var in regionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Region{Type: in.Type, Radius: in.Radius, Margin: in.Margin}
	if in.Center != nil {
		r.Center = *in.Center
	}
	if in.North != nil && in.South != nil && in.West != nil && in.East != nil {
		r.Box = geo.NewBoundingBox(
			geo.NewCoordinate(*in.North, *in.West),
			geo.NewCoordinate(*in.South, *in.East),
		)
	}
	return nil
}

// Avoid lists features and areas the matrix routes must not use.
type Avoid struct {
	Features []string
	Areas    []geo.BoundingBox
}

type avoidAreaJSON struct {
	Type  string  `json:"type"`
	North float64 `json:"north"`
	South float64 `json:"south"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// MarshalJSON writes the nested avoid object.
func (a Avoid) MarshalJSON() ([]byte, error) {
	out := struct {
		Features []string        `json:"features,omitempty"`
		Areas    []avoidAreaJSON `json:"areas,omitempty"`
	}{Features: a.Features}
	for _, b := range a.Areas {
		out.Areas = append(out.Areas, avoidAreaJSON{
			Type:  RegionBoundingBox,
			North: b.North(),
			South: b.South(),
			West:  b.West(),
			East:  b.East(),
		})
	}
	return json.Marshal(out)
}

// Truck describes the vehicle for truck matrices.
type Truck struct {
	ShippedHazardousGoods []string `json:"shippedHazardousGoods,omitempty"`
	GrossWeight           int      `json:"grossWeight,omitempty"`
	WeightPerAxle         int      `json:"weightPerAxle,omitempty"`
	Height                int      `json:"height,omitempty"`
	Width                 int      `json:"width,omitempty"`
	Length                int      `json:"length,omitempty"`
	AxleCount             int      `json:"axleCount,omitempty"`
	TunnelCategory        string   `json:"tunnelCategory,omitempty"`
}

// Matrix attributes.
const (
	AttributeTravelTimes = "travelTimes"
	AttributeDistances   = "distances"
)

// Request is the JSON body of a matrix calculation. Destinations default to
// the origins when empty.
type Request struct {
	Origins          []geo.Coordinate `json:"origins"`
	Destinations     []geo.Coordinate `json:"destinations,omitempty"`
	RegionDefinition Region           `json:"regionDefinition"`
	MatrixAttributes []string         `json:"matrixAttributes,omitempty"`
	TransportMode    string           `json:"transportMode,omitempty"`
	RoutingMode      string           `json:"routingMode,omitempty"`
	DepartureTime    *time.Time       `json:"departureTime,omitempty"`
	Avoid            *Avoid           `json:"avoid,omitempty"`
	Truck            *Truck           `json:"truck,omitempty"`
}

// Response is a completed matrix.
type Response struct {
	MatrixID         string  `json:"matrixId,omitempty"`
	Matrix           Matrix  `json:"matrix"`
	RegionDefinition *Region `json:"regionDefinition,omitempty"`
}

// Matrix holds row-major results: the entry for origin i and destination j
// is at index i*NumDestinations+j.
type Matrix struct {
	NumOrigins      int   `json:"numOrigins"`
	NumDestinations int   `json:"numDestinations"`
	TravelTimes     []int `json:"travelTimes,omitempty"`
	Distances       []int `json:"distances,omitempty"`
	ErrorCodes      []int `json:"errorCodes,omitempty"`
}

func (m Matrix) index(origin, destination int) (int, bool) {
	if origin < 0 || origin >= m.NumOrigins || destination < 0 || destination >= m.NumDestinations {
		return 0, false
	}
	return origin*m.NumDestinations + destination, true
}

// TravelTime returns the travel time in seconds from origin to destination.
// It reports false when the pair is out of range, was not requested, or
// could not be routed.
func (m Matrix) TravelTime(origin, destination int) (int, bool) {
	return m.entry(m.TravelTimes, origin, destination)
}

// Distance returns the distance in meters from origin to destination.
func (m Matrix) Distance(origin, destination int) (int, bool) {
	return m.entry(m.Distances, origin, destination)
}

func (m Matrix) entry(values []int, origin, destination int) (int, bool) {
	i, ok := m.index(origin, destination)
	if !ok || i >= len(values) {
		return 0, false
	}
	if i < len(m.ErrorCodes) && m.ErrorCodes[i] != 0 {
		return 0, false
	}
	return values[i], true
}

// Job is an accepted asynchronous matrix calculation.
type Job struct {
	MatrixID  string `json:"matrixId"`
	Status    string `json:"status"`
	StatusURL string `json:"statusUrl"`
	ResultURL string `json:"resultUrl,omitempty"`
}
