// Package transit provides a client for public transit station search,
// departure boards and journey planning.
package transit

import (
	"context"
	"strings"
	"time"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/routing"
)

const (
	// ServiceName identifies the legacy transit API.
	ServiceName = "transit"

	// V8ServiceName identifies the v8 transit routing API.
	V8ServiceName = "transit-v8"

	// DefaultBaseURL is the legacy transit API base URL.
	DefaultBaseURL = "https://transit.ls.hereapi.com"

	// DefaultV8BaseURL is the v8 transit routing API base URL.
	DefaultV8BaseURL = "https://transit.router.hereapi.com"

	DefaultMax    = 5
	DefaultRadius = 500
	DefaultLang   = "en"
)

// boardTime is the local time format of the legacy API.
const boardTime = "2006-01-02T15:04:05"

func legacyDescriptor(successKey string) endpoint.Descriptor {
	return endpoint.Descriptor{
		Service:     ServiceName,
		SuccessKey:  successKey,
		Rules:       []endpoint.Rule{endpoint.UnauthorizedRule},
		MessageKeys: []string{"Res.Message.text"},
	}
}

var (
	stationsDescriptor    = legacyDescriptor("Res.Stations")
	coverageDescriptor    = legacyDescriptor("Res.Coverage")
	departuresDescriptor  = legacyDescriptor("Res.NextDepartures")
	connectionsDescriptor = legacyDescriptor("Res.Connections")

	v8Descriptor = endpoint.Descriptor{
		Service:    V8ServiceName,
		SuccessKey: "routes",
		Rules:      []endpoint.Rule{endpoint.ErrorDescriptionRule, endpoint.TitleCauseRule},
	}
)

// Option configures one legacy transit call.
type Option func(*options)

type options struct {
	max      int
	radius   int
	lang     string
	arriveBy bool
	changes  int
}

// WithMax caps the number of results.
func WithMax(n int) Option {
	return func(o *options) {
		o.max = n
	}
}

// WithRadius sets the station search radius in meters.
func WithRadius(meters int) Option {
	return func(o *options) {
		o.radius = meters
	}
}

// WithLang sets the response language.
func WithLang(lang string) Option {
	return func(o *options) {
		o.lang = lang
	}
}

// ArriveBy makes CalculateRoute treat its time as the latest arrival.
func ArriveBy() Option {
	return func(o *options) {
		o.arriveBy = true
	}
}

// WithChanges caps the number of transfers. Negative means no limit.
func WithChanges(n int) Option {
	return func(o *options) {
		o.changes = n
	}
}

func apply(opts []Option) options {
	o := options{max: DefaultMax, radius: DefaultRadius, lang: DefaultLang, changes: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Client is a public transit client.
type Client struct {
	legacy *endpoint.Caller
	v8     *endpoint.Caller
}

// NewClient creates a new transit client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{
		legacy: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg),
		v8:     endpoint.NewCaller(V8ServiceName, DefaultV8BaseURL, cfg),
	}
}

// FindStationsByName finds stations whose name matches name, nearest to
// center first.
func (c *Client) FindStationsByName(ctx context.Context, center geo.Coordinate, name string, opts ...Option) (*StationsResponse, error) {
	const op = "FindStationsByName"
	if strings.TrimSpace(name) == "" {
		return nil, c.legacy.Invalid(op, "station name must not be empty")
	}
	if err := c.legacy.Validate(op, center); err != nil {
		return nil, err
	}
	o := apply(opts)

	var resp StationsResponse
	if err := c.get(ctx, stationsDescriptor, op, "/v3/stations/by_name.json", endpoint.Params{
		"center": geo.FormatCoordinate(center),
		"name":   name,
		"max":    o.max,
		"lang":   o.lang,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindStationsNearby finds the stations within the option radius of center.
func (c *Client) FindStationsNearby(ctx context.Context, center geo.Coordinate, opts ...Option) (*StationsResponse, error) {
	const op = "FindStationsNearby"
	if err := c.legacy.Validate(op, center); err != nil {
		return nil, err
	}
	o := apply(opts)
	if o.radius <= 0 {
		return nil, c.legacy.Invalid(op, "radius must be positive, got %d", o.radius)
	}

	var resp StationsResponse
	if err := c.get(ctx, stationsDescriptor, op, "/v3/stations/by_geocoord.json", endpoint.Params{
		"center": geo.FormatCoordinate(center),
		"radius": o.radius,
		"max":    o.max,
		"lang":   o.lang,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindStationsByIDs returns the stations with the given ids.
func (c *Client) FindStationsByIDs(ctx context.Context, ids []string, opts ...Option) (*StationsResponse, error) {
	const op = "FindStationsByIDs"
	stnIDs := geo.FormatStationIDs(ids)
	if stnIDs == "" {
		return nil, c.legacy.Invalid(op, "at least one station id is required")
	}
	o := apply(opts)

	var resp StationsResponse
	if err := c.get(ctx, stationsDescriptor, op, "/v3/stations/by_ids.json", endpoint.Params{
		"stnIds": stnIDs,
		"lang":   o.lang,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindCoverageInCities lists the covered cities nearest to center.
func (c *Client) FindCoverageInCities(ctx context.Context, center geo.Coordinate, opts ...Option) (*CoverageResponse, error) {
	const op = "FindCoverageInCities"
	if err := c.legacy.Validate(op, center); err != nil {
		return nil, err
	}
	o := apply(opts)

	var resp CoverageResponse
	if err := c.get(ctx, coverageDescriptor, op, "/v3/coverage/city.json", endpoint.Params{
		"center": geo.FormatCoordinate(center),
		"max":    o.max,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NextDepartures returns the departure board of a station from at onwards.
func (c *Client) NextDepartures(ctx context.Context, stationID string, at time.Time, opts ...Option) (*DeparturesResponse, error) {
	const op = "NextDepartures"
	if strings.TrimSpace(stationID) == "" {
		return nil, c.legacy.Invalid(op, "station id must not be empty")
	}
	o := apply(opts)

	var resp DeparturesResponse
	if err := c.get(ctx, departuresDescriptor, op, "/v3/board.json", endpoint.Params{
		"stnId": stationID,
		"time":  at.Format(boardTime),
		"max":   o.max,
		"lang":  o.lang,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CalculateRoute plans journeys from origin to destination departing at at,
// or arriving by at with ArriveBy.
func (c *Client) CalculateRoute(ctx context.Context, origin, destination geo.Coordinate, at time.Time, opts ...Option) (*ConnectionsResponse, error) {
	const op = "CalculateRoute"
	if err := c.legacy.Validate(op, origin, destination); err != nil {
		return nil, err
	}
	o := apply(opts)

	params := endpoint.Params{
		"dep":  geo.FormatCoordinate(origin),
		"arr":  geo.FormatCoordinate(destination),
		"time": at.Format(boardTime),
		"max":  o.max,
		"lang": o.lang,
	}
	params.SetIf(o.arriveBy, "arrival", 1)
	params.SetIf(o.changes >= 0, "changes", o.changes)

	var resp ConnectionsResponse
	if err := c.get(ctx, connectionsDescriptor, op, "/v3/route.json", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Route plans a v8 transit route. A nil departure means now.
func (c *Client) Route(ctx context.Context, origin, destination geo.Coordinate, departure *time.Time) (*routing.RoutesResponse, error) {
	const op = "Route"
	if err := c.v8.Validate(op, origin, destination); err != nil {
		return nil, err
	}

	var resp routing.RoutesResponse
	if err := c.v8.Call(ctx, v8Descriptor, endpoint.Request{
		Op:   op,
		Path: "/v8/routes",
		Params: endpoint.Params{
			"origin":        geo.FormatCoordinate(origin),
			"destination":   geo.FormatCoordinate(destination),
			"departureTime": departure,
			"return":        "polyline,travelSummary",
		},
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, d endpoint.Descriptor, op, path string, params endpoint.Params, out any) error {
	return c.legacy.Call(ctx, d, endpoint.Request{Op: op, Path: path, Params: params}, out)
}
