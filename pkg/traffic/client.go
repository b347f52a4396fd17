// Package traffic provides a client for traffic incidents and traffic flow.
package traffic

import (
	"context"
	"strconv"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the traffic API.
	ServiceName = "traffic"

	// DefaultBaseURL is the traffic API base URL.
	DefaultBaseURL = "https://traffic.ls.hereapi.com"

	incidentsPath = "/traffic/6.3/incidents.json"
	flowPath      = "/traffic/6.3/flow.json"
)

var (
	rules = []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.InvalidRequestRule}

	incidentsDescriptor = endpoint.Descriptor{Service: ServiceName, SuccessKey: "TRAFFICITEMS", Rules: rules}
	flowDescriptor      = endpoint.Descriptor{Service: ServiceName, SuccessKey: "RWS", Rules: rules}
)

// Criticality filters incidents by impact.
type Criticality int

const (
	Critical Criticality = iota
	Major
	Minor
	LowImpact
)

func (c Criticality) String() string {
	switch c {
	case Critical:
		return "critical"
	case Major:
		return "major"
	case Minor:
		return "minor"
	case LowImpact:
		return "lowImpact"
	}
	return "Criticality(" + strconv.Itoa(int(c)) + ")"
}

// Client is a traffic client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new traffic client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// IncidentsInBoundingBox returns incidents inside bbox, optionally limited
// to the given criticalities.
func (c *Client) IncidentsInBoundingBox(ctx context.Context, bbox geo.BoundingBox, criticality ...Criticality) (*IncidentsResponse, error) {
	const op = "IncidentsInBoundingBox"
	params, err := c.bboxParams(op, bbox)
	if err != nil {
		return nil, err
	}
	return c.incidents(ctx, op, params, criticality)
}

// IncidentsInCorridor returns incidents along a corridor of width meters.
// corridor is a flat lat,lon sequence; an unpaired trailing value is ignored.
func (c *Client) IncidentsInCorridor(ctx context.Context, corridor []float64, width int, criticality ...Criticality) (*IncidentsResponse, error) {
	const op = "IncidentsInCorridor"
	params, err := c.corridorParams(op, corridor, width)
	if err != nil {
		return nil, err
	}
	return c.incidents(ctx, op, params, criticality)
}

// IncidentsViaProximity returns incidents within radius meters of center.
func (c *Client) IncidentsViaProximity(ctx context.Context, center geo.Coordinate, radius int, criticality ...Criticality) (*IncidentsResponse, error) {
	const op = "IncidentsViaProximity"
	params, err := c.proximityParams(op, center, radius)
	if err != nil {
		return nil, err
	}
	return c.incidents(ctx, op, params, criticality)
}

// FlowInBoundingBox returns flow data inside bbox.
func (c *Client) FlowInBoundingBox(ctx context.Context, bbox geo.BoundingBox) (*FlowResponse, error) {
	const op = "FlowInBoundingBox"
	params, err := c.bboxParams(op, bbox)
	if err != nil {
		return nil, err
	}
	return c.flow(ctx, op, params)
}

// FlowInCorridor returns flow data along a corridor of width meters.
func (c *Client) FlowInCorridor(ctx context.Context, corridor []float64, width int) (*FlowResponse, error) {
	const op = "FlowInCorridor"
	params, err := c.corridorParams(op, corridor, width)
	if err != nil {
		return nil, err
	}
	return c.flow(ctx, op, params)
}

// FlowViaProximity returns flow data within radius meters of center.
func (c *Client) FlowViaProximity(ctx context.Context, center geo.Coordinate, radius int) (*FlowResponse, error) {
	const op = "FlowViaProximity"
	params, err := c.proximityParams(op, center, radius)
	if err != nil {
		return nil, err
	}
	return c.flow(ctx, op, params)
}

// FlowInTile returns flow data for the map tile containing at, at zoom,
// addressed by its quadkey.
func (c *Client) FlowInTile(ctx context.Context, at geo.Coordinate, zoom int) (*FlowResponse, error) {
	const op = "FlowInTile"
	if err := c.caller.Validate(op, at); err != nil {
		return nil, err
	}
	if zoom < 1 || zoom > 22 {
		return nil, c.caller.Invalid(op, "zoom must be between 1 and 22, got %d", zoom)
	}
	return c.flow(ctx, op, endpoint.Params{"quadkey": geo.Quadkey(at, zoom)})
}

func (c *Client) bboxParams(op string, bbox geo.BoundingBox) (endpoint.Params, error) {
	if err := c.caller.Validate(op, bbox.TopLeft, bbox.BottomRight); err != nil {
		return nil, err
	}
	return endpoint.Params{"bbox": geo.FormatBoundingBox(bbox)}, nil
}

func (c *Client) corridorParams(op string, corridor []float64, width int) (endpoint.Params, error) {
	points := geo.FormatCorridor(corridor)
	if points == "" {
		return nil, c.caller.Invalid(op, "corridor needs at least one lat,lon pair")
	}
	for i := 0; i+1 < len(corridor); i += 2 {
		if err := c.caller.Validate(op, geo.NewCoordinate(corridor[i], corridor[i+1])); err != nil {
			return nil, err
		}
	}
	if width <= 0 {
		return nil, c.caller.Invalid(op, "corridor width must be positive, got %d", width)
	}
	return endpoint.Params{"corridor": points + ";" + strconv.Itoa(width)}, nil
}

func (c *Client) proximityParams(op string, center geo.Coordinate, radius int) (endpoint.Params, error) {
	if err := c.caller.Validate(op, center); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, c.caller.Invalid(op, "radius must be positive, got %d", radius)
	}
	return endpoint.Params{"prox": geo.FormatProximity(center, radius)}, nil
}

func (c *Client) incidents(ctx context.Context, op string, params endpoint.Params, criticality []Criticality) (*IncidentsResponse, error) {
	params.SetIf(len(criticality) > 0, "criticality", geo.Join(criticality, ","))

	var resp IncidentsResponse
	if err := c.caller.Call(ctx, incidentsDescriptor, endpoint.Request{
		Op:     op,
		Path:   incidentsPath,
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) flow(ctx context.Context, op string, params endpoint.Params) (*FlowResponse, error) {
	var resp FlowResponse
	if err := c.caller.Call(ctx, flowDescriptor, endpoint.Request{
		Op:     op,
		Path:   flowPath,
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
