package fleet

import (
	"strings"
	"time"

	"github.com/wayfarer/wayfarer/pkg/geo"
)

// Waypoint is a stop to sequence. Constraints are appended verbatim after the
// position, e.g. "st:900" for a service time or "pickup:GRP,value:20".
type Waypoint struct {
	ID          string
	Position    geo.Coordinate
	Constraints []string
}

// NewWaypoint builds a waypoint without constraints.
func NewWaypoint(id string, position geo.Coordinate) Waypoint {
	return Waypoint{ID: id, Position: position}
}

// String renders "id;lat,lon[;constraint...]".
func (w Waypoint) String() string {
	parts := make([]string, 0, 2+len(w.Constraints))
	parts = append(parts, w.ID, geo.FormatCoordinate(w.Position))
	for _, c := range w.Constraints {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, ";")
}

// Response is the result of a sequencing or pickup request.
type Response struct {
	Results            []Result `json:"results"`
	Errors             []string `json:"errors"`
	ProcessingTimeDesc string   `json:"processingTimeDesc"`
	ResponseCode       string   `json:"responseCode"`
	Warnings           any      `json:"warnings"`
	RequestID          string   `json:"requestId"`
}

// Result is one optimized sequence.
type Result struct {
	Waypoints        []SequencedWaypoint `json:"waypoints"`
	Distance         string              `json:"distance"`
	Time             string              `json:"time"`
	Interconnections []Interconnection   `json:"interconnections"`
	Description      string              `json:"description"`
	TimeBreakdown    TimeBreakdown       `json:"timeBreakdown"`
}

// SequencedWaypoint is a waypoint at its optimized position.
type SequencedWaypoint struct {
	ID                   string     `json:"id"`
	Lat                  float64    `json:"lat"`
	Lng                  float64    `json:"lng"`
	Sequence             int        `json:"sequence"`
	EstimatedArrival     *time.Time `json:"estimatedArrival"`
	EstimatedDeparture   *time.Time `json:"estimatedDeparture"`
	FulfilledConstraints []string   `json:"fulfilledConstraints"`
}

// Position returns the waypoint's coordinate.
func (w SequencedWaypoint) Position() geo.Coordinate {
	return geo.NewCoordinate(w.Lat, w.Lng)
}

// Interconnection is the leg between two consecutive waypoints.
type Interconnection struct {
	FromWaypoint string  `json:"fromWaypoint"`
	ToWaypoint   string  `json:"toWaypoint"`
	Distance     float64 `json:"distance"`
	Time         float64 `json:"time"`
	Rest         float64 `json:"rest"`
	Waiting      float64 `json:"waiting"`
}

// TimeBreakdown splits the total time in seconds.
type TimeBreakdown struct {
	Driving int `json:"driving"`
	Service int `json:"service"`
	Rest    int `json:"rest"`
	Waiting int `json:"waiting"`
}
