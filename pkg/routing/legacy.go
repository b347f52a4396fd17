package routing

import (
	"context"
	"strconv"
	"time"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

// RouteMode is one token of the legacy mode parameter.
type RouteMode string

const (
	ModeFastest                  RouteMode = "fastest"
	ModeShortest                 RouteMode = "shortest"
	ModeBalanced                 RouteMode = "balanced"
	ModeCar                      RouteMode = "car"
	ModeCarHOV                   RouteMode = "carHOV"
	ModePedestrian               RouteMode = "pedestrian"
	ModeBicycle                  RouteMode = "bicycle"
	ModeTruck                    RouteMode = "truck"
	ModePublicTransport          RouteMode = "publicTransport"
	ModePublicTransportTimeTable RouteMode = "publicTransportTimeTable"
	ModeTrafficEnabled           RouteMode = "traffic:enabled"
	ModeTrafficDisabled          RouteMode = "traffic:disabled"
	ModeTrafficDefault           RouteMode = "traffic:default"
)

const legacyPath = "/routing/7.2/calculateroute.json"

var legacyDescriptor = endpoint.Descriptor{
	Service:    ServiceName,
	SuccessKey: "response",
	Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.SubtypeRule},
}

// Option configures one legacy route call.
type Option func(*options)

type options struct {
	departure *time.Time
	arrival   *time.Time
	language  string
}

// WithDeparture sets the departure time. Without it the route departs now.
func WithDeparture(t time.Time) Option {
	return func(o *options) {
		o.departure = &t
	}
}

// WithArrival sets the arrival time. It cannot be combined with WithDeparture.
func WithArrival(t time.Time) Option {
	return func(o *options) {
		o.arrival = &t
	}
}

// WithLanguage sets the instruction language, e.g. "de-de".
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// summaryKind selects how RouteShort is derived.
type summaryKind int

const (
	summaryVehicle summaryKind = iota
	summaryStreets
	summaryTransit
)

// CarRoute calculates a car route. Modes default to car;fastest.
func (c *Client) CarRoute(ctx context.Context, origin, destination geo.Coordinate, modes []RouteMode, opts ...Option) (*Response, error) {
	return c.calculate(ctx, "CarRoute", []geo.Coordinate{origin, destination},
		orDefault(modes, ModeCar, ModeFastest), nil, summaryVehicle, opts)
}

// PedestrianRoute calculates a walking route. Modes default to pedestrian;fastest.
func (c *Client) PedestrianRoute(ctx context.Context, origin, destination geo.Coordinate, modes []RouteMode, opts ...Option) (*Response, error) {
	return c.calculate(ctx, "PedestrianRoute", []geo.Coordinate{origin, destination},
		orDefault(modes, ModePedestrian, ModeFastest), nil, summaryStreets, opts)
}

// BicycleRoute calculates a cycling route. Modes default to bicycle;fastest.
func (c *Client) BicycleRoute(ctx context.Context, origin, destination geo.Coordinate, modes []RouteMode, opts ...Option) (*Response, error) {
	return c.calculate(ctx, "BicycleRoute", []geo.Coordinate{origin, destination},
		orDefault(modes, ModeBicycle, ModeFastest), nil, summaryStreets, opts)
}

// TruckRoute calculates a truck route. Modes default to truck;fastest.
func (c *Client) TruckRoute(ctx context.Context, origin, destination geo.Coordinate, modes []RouteMode, opts ...Option) (*Response, error) {
	return c.calculate(ctx, "TruckRoute", []geo.Coordinate{origin, destination},
		orDefault(modes, ModeTruck, ModeFastest), nil, summaryVehicle, opts)
}

// IntermediateRoute calculates a car route through an intermediate waypoint.
func (c *Client) IntermediateRoute(ctx context.Context, origin, intermediate, destination geo.Coordinate, modes []RouteMode, opts ...Option) (*Response, error) {
	return c.calculate(ctx, "IntermediateRoute", []geo.Coordinate{origin, intermediate, destination},
		orDefault(modes, ModeCar, ModeFastest), nil, summaryVehicle, opts)
}

// PublicTransport calculates a public transport route. combineChange merges
// change maneuvers into a single instruction.
func (c *Client) PublicTransport(ctx context.Context, origin, destination geo.Coordinate, combineChange bool, modes []RouteMode, opts ...Option) (*Response, error) {
	return c.calculate(ctx, "PublicTransport", []geo.Coordinate{origin, destination},
		orDefault(modes, ModePublicTransport, ModeFastest),
		endpoint.Params{"combineChange": combineChange}, summaryTransit, opts)
}

// PublicTransportTimetable calculates a timetable-based public transport
// route. Departure and arrival are mutually exclusive.
func (c *Client) PublicTransportTimetable(ctx context.Context, origin, destination geo.Coordinate, combineChange bool, modes []RouteMode, opts ...Option) (*Response, error) {
	return c.calculate(ctx, "PublicTransportTimetable", []geo.Coordinate{origin, destination},
		orDefault(modes, ModePublicTransportTimeTable, ModeFastest),
		endpoint.Params{"combineChange": combineChange}, summaryTransit, opts)
}

// RouteByName calculates a route between places given by name or position.
// Named places are geocoded first, in order; a failed lookup stops before the
// route request. Modes default to car;fastest.
func (c *Client) RouteByName(ctx context.Context, origin, destination Place, modes []RouteMode, opts ...Option) (*Response, error) {
	const op = "RouteByName"
	modes = orDefault(modes, ModeCar, ModeFastest)

	if err := checkTimes(c.legacy, op, opts); err != nil {
		return nil, err
	}

	waypoints, err := c.resolve(ctx, c.legacy, op, origin, destination)
	if err != nil {
		return nil, err
	}

	kind := summaryVehicle
	switch modes[0] {
	case ModePedestrian, ModeBicycle:
		kind = summaryStreets
	case ModePublicTransport, ModePublicTransportTimeTable:
		kind = summaryTransit
	}
	return c.calculate(ctx, op, waypoints, modes, nil, kind, opts)
}

func (c *Client) calculate(ctx context.Context, op string, waypoints []geo.Coordinate, modes []RouteMode, extra endpoint.Params, kind summaryKind, opts []Option) (*Response, error) {
	if err := c.legacy.Validate(op, waypoints...); err != nil {
		return nil, err
	}
	if err := checkTimes(c.legacy, op, opts); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	params := endpoint.Params{"mode": geo.Join(modes, ";")}
	params.SetIf(o.language != "", "language", o.language)
	for i, w := range waypoints {
		params["waypoint"+strconv.Itoa(i)] = "geo!" + geo.FormatCoordinate(w)
	}
	switch {
	case o.arrival != nil:
		params["arrival"] = o.arrival.Format(time.RFC3339)
	case o.departure != nil:
		params["departure"] = o.departure.Format(time.RFC3339)
	default:
		params["departure"] = "now"
	}
	for k, v := range extra {
		params[k] = v
	}

	var resp Response
	if err := c.legacy.Call(ctx, legacyDescriptor, endpoint.Request{
		Op:     op,
		Path:   legacyPath,
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}

	switch kind {
	case summaryVehicle:
		resp.RouteShort = vehicleSummary(resp.Response.Route)
	case summaryStreets:
		resp.RouteShort = streetSummary(resp.Response.Route)
	case summaryTransit:
		resp.RouteShort = transitSummary(resp.Response.Route)
	}
	return &resp, nil
}

func checkTimes(caller *endpoint.Caller, op string, opts []Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.departure != nil && o.arrival != nil {
		return caller.Invalid(op, "departure and arrival are mutually exclusive")
	}
	return nil
}

func orDefault(modes []RouteMode, defaults ...RouteMode) []RouteMode {
	if len(modes) == 0 {
		return defaults
	}
	return modes
}
