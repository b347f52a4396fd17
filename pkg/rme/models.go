package rme

import (
	"strconv"
	"strings"

	"github.com/wayfarer/wayfarer/pkg/geo"
)

// Response is a matched route.
type Response struct {
	RouteLinks  []RouteLink  `json:"RouteLinks"`
	TracePoints []TracePoint `json:"TracePoints"`
	Warnings    []Warning    `json:"Warnings"`
	MapVersion  string       `json:"MapVersion"`
}

// RouteLink is one road link of the matched route. LinkID is negative when
// the link is driven against its digitization direction.
type RouteLink struct {
	LinkID                   int64          `json:"linkId"`
	FunctionalClass          int            `json:"functionalClass"`
	Confidence               float64        `json:"confidence"`
	LinkLength               float64        `json:"linkLength"`
	MSecToReachLinkFromStart int64          `json:"mSecToReachLinkFromStart"`
	Offset                   float64        `json:"offset,omitempty"`
	Shape                    string         `json:"shape"`
	Attributes               map[string]any `json:"attributes,omitempty"`
}

// Points parses Shape, a space separated "lat lon lat lon ..." list. A
// trailing odd value or an unparsable number ends the list.
func (l RouteLink) Points() []geo.Coordinate {
	fields := strings.Fields(l.Shape)
	points := make([]geo.Coordinate, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		lat, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			break
		}
		lon, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			break
		}
		points = append(points, geo.NewCoordinate(lat, lon))
	}
	return points
}

// TracePoint is an input fix with its matched position.
type TracePoint struct {
	Lat                   float64 `json:"lat"`
	Lon                   float64 `json:"lon"`
	LatMatched            float64 `json:"latMatched"`
	LonMatched            float64 `json:"lonMatched"`
	Timestamp             int64   `json:"timestamp"`
	LinkIDMatched         int64   `json:"linkIdMatched"`
	MatchDistance         float64 `json:"matchDistance"`
	MatchOffsetOnLink     float64 `json:"matchOffsetOnLink"`
	RouteLinkSeqNrMatched int     `json:"routeLinkSeqNrMatched"`
}

// Matched returns the position snapped to the road.
func (p TracePoint) Matched() geo.Coordinate {
	return geo.NewCoordinate(p.LatMatched, p.LonMatched)
}

// Warning reports a matching problem that did not fail the request.
type Warning struct {
	Category         int    `json:"category"`
	Text             string `json:"text"`
	TracePointSeqNum int    `json:"tracePointSeqNum"`
	RouteLinkSeqNum  int    `json:"routeLinkSeqNum"`
}
