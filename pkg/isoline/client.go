// Package isoline provides a client for the isoline routing API, which
// computes the area reachable from an origin, or from which a destination
// can be reached, within a distance, time or energy budget.
package isoline

import (
	"context"
	"time"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the isoline API.
	ServiceName = "isoline"

	// DefaultBaseURL is the isoline API base URL.
	DefaultBaseURL = "https://isoline.router.hereapi.com"
)

var descriptor = endpoint.Descriptor{
	Service:    ServiceName,
	SuccessKey: "isolines",
	Rules:      []endpoint.Rule{endpoint.ErrorDescriptionRule, endpoint.TitleCauseRule},
}

// RangeType is the budget an isoline is computed for.
type RangeType string

const (
	RangeDistance    RangeType = "distance"    // meters
	RangeTime        RangeType = "time"        // seconds
	RangeConsumption RangeType = "consumption" // Wh
)

// EV describes the consumption model of an electric vehicle.
type EV struct {
	FreeFlowSpeedTable   []geo.ConsumptionPair
	TrafficSpeedTable    []geo.ConsumptionPair
	Ascent               float64 // Wh/m
	Descent              float64 // Wh/m
	AuxiliaryConsumption float64 // Wh/s
}

func (ev *EV) params(p endpoint.Params) {
	if ev == nil {
		return
	}
	p.SetIf(len(ev.FreeFlowSpeedTable) > 0, "ev[freeFlowSpeedTable]", geo.FormatConsumptionTable(ev.FreeFlowSpeedTable))
	p.SetIf(len(ev.TrafficSpeedTable) > 0, "ev[trafficSpeedTable]", geo.FormatConsumptionTable(ev.TrafficSpeedTable))
	p.SetIf(ev.Ascent != 0, "ev[ascent]", ev.Ascent)
	p.SetIf(ev.Descent != 0, "ev[descent]", ev.Descent)
	p.SetIf(ev.AuxiliaryConsumption != 0, "ev[auxiliaryConsumption]", ev.AuxiliaryConsumption)
}

// Request is an isoline calculation. Exactly one of Origin and Destination
// must be set.
type Request struct {
	TransportMode string
	Origin        *geo.Coordinate
	Destination   *geo.Coordinate

	RangeType   RangeType
	RangeValues []int

	// DepartureTime and ArrivalTime are mutually exclusive. ArrivalTime
	// requires Destination.
	DepartureTime *time.Time
	ArrivalTime   *time.Time

	RoutingMode    string
	OptimizeFor    string
	ShapeMaxPoints int
	EV             *EV
}

// Client is an isoline routing client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new isoline client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// Calculate computes the isolines described by req.
func (c *Client) Calculate(ctx context.Context, req Request) (*Response, error) {
	return c.calculate(ctx, "Calculate", req)
}

// DistanceBased computes isolines for the given distances in meters around
// origin.
func (c *Client) DistanceBased(ctx context.Context, origin geo.Coordinate, meters []int, transportMode string) (*Response, error) {
	return c.calculate(ctx, "DistanceBased", Request{
		TransportMode: transportMode,
		Origin:        &origin,
		RangeType:     RangeDistance,
		RangeValues:   meters,
	})
}

// TimeBased computes isolines for the given travel times in seconds around
// origin.
func (c *Client) TimeBased(ctx context.Context, origin geo.Coordinate, seconds []int, transportMode string) (*Response, error) {
	return c.calculate(ctx, "TimeBased", Request{
		TransportMode: transportMode,
		Origin:        &origin,
		RangeType:     RangeTime,
		RangeValues:   seconds,
	})
}

// ConsumptionBased computes the area an electric car reaches from origin
// with the given energy budgets in Wh.
func (c *Client) ConsumptionBased(ctx context.Context, origin geo.Coordinate, wattHours []int, ev EV) (*Response, error) {
	return c.calculate(ctx, "ConsumptionBased", Request{
		TransportMode: "car",
		Origin:        &origin,
		RangeType:     RangeConsumption,
		RangeValues:   wattHours,
		EV:            &ev,
	})
}

func (c *Client) calculate(ctx context.Context, op string, req Request) (*Response, error) {
	if err := c.validate(op, req); err != nil {
		return nil, err
	}

	params := endpoint.Params{
		"transportMode": req.TransportMode,
		"range[type]":   string(req.RangeType),
		"range[values]": geo.Join(req.RangeValues, ","),
		"departureTime": req.DepartureTime,
		"arrivalTime":   req.ArrivalTime,
	}
	if req.Origin != nil {
		params["origin"] = geo.FormatCoordinate(*req.Origin)
	} else {
		params["destination"] = geo.FormatCoordinate(*req.Destination)
	}
	params.SetIf(req.RoutingMode != "", "routingMode", req.RoutingMode)
	params.SetIf(req.OptimizeFor != "", "optimizeFor", req.OptimizeFor)
	params.SetIf(req.ShapeMaxPoints > 0, "shape[maxPoints]", req.ShapeMaxPoints)
	req.EV.params(params)

	var resp Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:     op,
		Path:   "/v8/isolines",
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) validate(op string, req Request) error {
	switch {
	case req.Origin == nil && req.Destination == nil:
		return c.caller.Invalid(op, "one of origin or destination is required")
	case req.Origin != nil && req.Destination != nil:
		return c.caller.Invalid(op, "origin and destination are mutually exclusive")
	case req.DepartureTime != nil && req.ArrivalTime != nil:
		return c.caller.Invalid(op, "departure and arrival are mutually exclusive")
	case req.ArrivalTime != nil && req.Destination == nil:
		return c.caller.Invalid(op, "arrival time requires a destination")
	case req.TransportMode == "":
		return c.caller.Invalid(op, "transport mode is required")
	case req.RangeType == "":
		return c.caller.Invalid(op, "range type is required")
	case len(req.RangeValues) == 0:
		return c.caller.Invalid(op, "at least one range value is required")
	case req.RangeType == RangeConsumption && req.EV == nil:
		return c.caller.Invalid(op, "consumption ranges require an EV consumption model")
	}

	center := req.Origin
	if center == nil {
		center = req.Destination
	}
	return c.caller.Validate(op, *center)
}
