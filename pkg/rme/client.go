// Package rme provides a client for matching GPS traces to road links.
package rme

import (
	"context"
	"net/http"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the route matching API.
	ServiceName = "rme"

	// DefaultBaseURL is the route matching API base URL.
	DefaultBaseURL = "https://routematching.hereapi.com"

	DefaultRouteMode = "car"
)

var descriptor = endpoint.Descriptor{
	Service:     ServiceName,
	SuccessKey:  "RouteLinks",
	Rules:       []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.SubtypeRule},
	MessageKeys: []string{"faultString"},
}

// Client is a route matching client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new route matching client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// MatchRoute matches the GPX trace to road links. routeMode defaults to car.
// attributes name the link attribute layers to return, e.g.
// "SPEED_LIMITS_FCn(FROM_REF_SPEED_LIMIT,TO_REF_SPEED_LIMIT)".
func (c *Client) MatchRoute(ctx context.Context, gpx []byte, routeMode string, attributes []string) (*Response, error) {
	const op = "MatchRoute"

	if len(gpx) == 0 {
		return nil, c.caller.Invalid(op, "gpx trace is required")
	}
	if routeMode == "" {
		routeMode = DefaultRouteMode
	}

	params := endpoint.Params{"routemode": routeMode}
	params.SetIf(len(attributes) > 0, "attributes", geo.Join(attributes, ","))

	var resp Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:          op,
		Method:      http.MethodPost,
		Path:        "/v8/match/routelinks",
		Params:      params,
		RawBody:     gpx,
		ContentType: "application/binary",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MatchTrace encodes points as a GPX track and matches it.
func (c *Client) MatchTrace(ctx context.Context, points []TrackPoint, routeMode string, attributes []string) (*Response, error) {
	if len(points) < 2 {
		return nil, c.caller.Invalid("MatchTrace", "a trace needs at least two points, got %d", len(points))
	}
	for _, p := range points {
		if err := c.caller.Validate("MatchTrace", p.Position); err != nil {
			return nil, err
		}
	}

	gpx, err := EncodeGPX(points)
	if err != nil {
		return nil, endpoint.Wrap(ServiceName, "MatchTrace", "encoding gpx", err)
	}
	return c.MatchRoute(ctx, gpx, routeMode, attributes)
}
