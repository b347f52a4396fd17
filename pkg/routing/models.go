package routing

import (
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/polyline"
)

// Response is a legacy calculateroute result.
type Response struct {
	Response RouteResponse `json:"response"`

	// RouteShort summarizes the first route's maneuvers, e.g.
	// "US-101; I-280 S". It is derived locally, never sent by the service.
	RouteShort string `json:"routeShort,omitempty"`
}

// RouteResponse is the body of a legacy route result.
type RouteResponse struct {
	MetaInfo MetaInfo `json:"metaInfo"`
	Route    []Route  `json:"route"`
	Language string   `json:"language"`
}

// MetaInfo describes the service that computed the route.
type MetaInfo struct {
	Timestamp           string   `json:"timestamp"`
	MapVersion          string   `json:"mapVersion"`
	ModuleVersion       string   `json:"moduleVersion"`
	InterfaceVersion    string   `json:"interfaceVersion"`
	AvailableMapVersion []string `json:"availableMapVersion,omitempty"`
}

// Route is one legacy route alternative.
type Route struct {
	Waypoint            []Waypoint            `json:"waypoint"`
	Mode                Mode                  `json:"mode"`
	Leg                 []Leg                 `json:"leg"`
	Summary             Summary               `json:"summary"`
	PublicTransportLine []PublicTransportLine `json:"publicTransportLine,omitempty"`
}

// Waypoint is a matched input waypoint.
type Waypoint struct {
	LinkID           string      `json:"linkId"`
	MappedPosition   LegacyPoint `json:"mappedPosition"`
	OriginalPosition LegacyPoint `json:"originalPosition"`
	Type             string      `json:"type"`
	Spot             float64     `json:"spot"`
	SideOfStreet     string      `json:"sideOfStreet"`
	MappedRoadName   string      `json:"mappedRoadName"`
	Label            string      `json:"label"`
	ShapeIndex       int         `json:"shapeIndex"`
}

// LegacyPoint is the latitude/longitude object of the legacy API.
type LegacyPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate converts p.
func (p LegacyPoint) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Latitude, Lon: p.Longitude}
}

// Mode echoes the requested routing mode.
type Mode struct {
	Type           string   `json:"type"`
	TransportModes []string `json:"transportModes"`
	TrafficMode    string   `json:"trafficMode"`
	Feature        []string `json:"feature"`
}

// Leg is the part of a route between two waypoints.
type Leg struct {
	Start      Waypoint   `json:"start"`
	End        Waypoint   `json:"end"`
	Length     int        `json:"length"`
	TravelTime int        `json:"travelTime"`
	Maneuver   []Maneuver `json:"maneuver"`
}

// Maneuver is one turn-by-turn instruction.
type Maneuver struct {
	ID          string      `json:"id"`
	Position    LegacyPoint `json:"position"`
	Instruction string      `json:"instruction"`
	TravelTime  int         `json:"travelTime"`
	Length      int         `json:"length"`
	Line        string      `json:"line,omitempty"`
	Type        string      `json:"_type"`
}

// Summary totals a legacy route.
type Summary struct {
	Distance    int      `json:"distance"`
	TrafficTime int      `json:"trafficTime"`
	BaseTime    int      `json:"baseTime"`
	Flags       []string `json:"flags"`
	Text        string   `json:"text"`
	TravelTime  int      `json:"travelTime"`
	Departure   string   `json:"departure,omitempty"`
}

// PublicTransportLine describes a line used by a transit route.
type PublicTransportLine struct {
	ID          string `json:"id"`
	LineName    string `json:"lineName"`
	CompanyName string `json:"companyName"`
	Destination string `json:"destination"`
	Type        string `json:"type"`
}

// RoutesResponse is a v8 routes result.
type RoutesResponse struct {
	Routes  []V8Route `json:"routes"`
	Notices []Notice  `json:"notices,omitempty"`
}

// V8Route is one v8 route alternative.
type V8Route struct {
	ID       string    `json:"id"`
	Sections []Section `json:"sections"`
}

// Section is a part of a v8 route travelled with a single transport mode.
type Section struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Departure Stop          `json:"departure"`
	Arrival   Stop          `json:"arrival"`
	Summary   *RouteSummary `json:"summary,omitempty"`
	Polyline  string        `json:"polyline,omitempty"`
	Transport Transport     `json:"transport"`
	Actions   []Action      `json:"actions,omitempty"`
	Spans     []Span        `json:"spans,omitempty"`
	Notices   []Notice      `json:"notices,omitempty"`
}

// Coordinates decodes the section's flexible polyline.
func (s Section) Coordinates() ([]geo.Coordinate, error) {
	points, err := polyline.Decode(s.Polyline)
	if err != nil {
		return nil, err
	}
	out := make([]geo.Coordinate, len(points))
	for i, p := range points {
		out[i] = geo.Coordinate{Lat: p.Lat, Lon: p.Lon}
	}
	return out, nil
}

// Stop is a section boundary.
type Stop struct {
	Time  string    `json:"time"`
	Place StopPlace `json:"place"`
}

// StopPlace locates a Stop.
type StopPlace struct {
	Type             string          `json:"type"`
	Name             string          `json:"name,omitempty"`
	Location         geo.Coordinate  `json:"location"`
	OriginalLocation *geo.Coordinate `json:"originalLocation,omitempty"`
	WaypointIndex    *int            `json:"waypoint,omitempty"`
}

// RouteSummary totals a v8 section.
type RouteSummary struct {
	Duration     int     `json:"duration"`
	Length       int     `json:"length"`
	BaseDuration int     `json:"baseDuration"`
	Consumption  float64 `json:"consumption,omitempty"`
}

// Transport is the mode used on a section.
type Transport struct {
	Mode     string `json:"mode"`
	Name     string `json:"name,omitempty"`
	Headsign string `json:"headsign,omitempty"`
	Category string `json:"category,omitempty"`
}

// Action is a v8 maneuver.
type Action struct {
	Action      string `json:"action"`
	Duration    int    `json:"duration"`
	Length      int    `json:"length"`
	Instruction string `json:"instruction,omitempty"`
	Offset      int    `json:"offset"`
	Direction   string `json:"direction,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// Span carries the attributes requested through the spans parameter.
type Span struct {
	Offset          int     `json:"offset"`
	Length          int     `json:"length,omitempty"`
	Duration        int     `json:"duration,omitempty"`
	Names           []Name  `json:"names,omitempty"`
	RouteNumbers    []Name  `json:"routeNumbers,omitempty"`
	CountryCode     string  `json:"countryCode,omitempty"`
	SpeedLimit      float64 `json:"speedLimit,omitempty"`
	FunctionalClass int     `json:"functionalClass,omitempty"`
	Notices         []int   `json:"notices,omitempty"`
}

// Name is a localized street name or route number.
type Name struct {
	Value    string `json:"value"`
	Language string `json:"language,omitempty"`
}

// Notice reports a problem with a route or section.
type Notice struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Severity string `json:"severity,omitempty"`
}
