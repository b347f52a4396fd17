// Package evcharging provides a client for EV charging station search.
package evcharging

import (
	"context"
	"net/url"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the EV charging stations API.
	ServiceName = "evcharging"

	// DefaultBaseURL is the EV charging stations API base URL.
	DefaultBaseURL = "https://ev-v2.cc.api.here.com"
)

var descriptor = endpoint.Descriptor{
	Service:    ServiceName,
	SuccessKey: "evStations",
	Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.InvalidRequestRule},
}

// ConnectorType is a plug standard id used to filter stations.
type ConnectorType int

const (
	ConnectorType2    ConnectorType = 29 // IEC 62196-2 type 2
	ConnectorCHAdeMO  ConnectorType = 30
	ConnectorTesla    ConnectorType = 31
	ConnectorCCSCombo ConnectorType = 33 // IEC 62196-3 type 2 combo
)

// Client is an EV charging stations client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new EV charging stations client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// CircularSearch finds stations within radius meters of center offering any
// of the connector types. No connector types means no filter.
func (c *Client) CircularSearch(ctx context.Context, center geo.Coordinate, radius int, connectors []ConnectorType) (*Response, error) {
	const op = "CircularSearch"

	if err := c.caller.Validate(op, center); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, c.caller.Invalid(op, "radius must be positive, got %d", radius)
	}
	return c.search(ctx, op, endpoint.Params{"prox": geo.FormatProximity(center, radius)}, connectors)
}

// BoundingBoxSearch finds stations inside bbox.
func (c *Client) BoundingBoxSearch(ctx context.Context, bbox geo.BoundingBox, connectors []ConnectorType) (*Response, error) {
	const op = "BoundingBoxSearch"

	if err := c.caller.Validate(op, bbox.TopLeft, bbox.BottomRight); err != nil {
		return nil, err
	}
	return c.search(ctx, op, endpoint.Params{"bbox": geo.FormatBoundingBox(bbox)}, connectors)
}

// CorridorSearch finds stations along the polyline through points, given as
// flat lat,lon pairs.
func (c *Client) CorridorSearch(ctx context.Context, points []float64, connectors []ConnectorType) (*Response, error) {
	const op = "CorridorSearch"

	if len(points) < 4 || len(points)%2 != 0 {
		return nil, c.caller.Invalid(op, "corridor needs at least two lat,lon pairs, got %d values", len(points))
	}
	for i := 0; i < len(points); i += 2 {
		if err := c.caller.Validate(op, geo.NewCoordinate(points[i], points[i+1])); err != nil {
			return nil, err
		}
	}
	return c.search(ctx, op, endpoint.Params{"corridor": geo.FormatCorridor(points)}, connectors)
}

// StationDetails fetches one station by id.
func (c *Client) StationDetails(ctx context.Context, id string) (*Response, error) {
	const op = "StationDetails"

	if id == "" {
		return nil, c.caller.Invalid(op, "station id is required")
	}

	var resp Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:   op,
		Path: "/ev/stations/" + url.PathEscape(id) + ".json",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) search(ctx context.Context, op string, params endpoint.Params, connectors []ConnectorType) (*Response, error) {
	params.SetIf(len(connectors) > 0, "connectortype", geo.Join(connectors, ","))

	var resp Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:     op,
		Path:   "/ev/stations.json",
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
