// Package matrix provides a client for the matrix routing API, which computes
// travel times and distances between every origin and destination pair.
package matrix

import (
	"context"
	"net/http"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
)

const (
	// ServiceName identifies the matrix API.
	ServiceName = "matrix"

	// DefaultBaseURL is the matrix API base URL.
	DefaultBaseURL = "https://matrix.router.hereapi.com"

	matrixPath = "/v8/matrix"
)

var descriptor = endpoint.Descriptor{
	Service:    ServiceName,
	SuccessKey: "matrix",
	Rules:      []endpoint.Rule{endpoint.ErrorDescriptionRule, endpoint.TitleCauseRule},
}

// Client is a matrix routing client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new matrix routing client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// Calculate computes a matrix synchronously, authenticated with the API key.
func (c *Client) Calculate(ctx context.Context, req Request) (*Response, error) {
	const op = "Calculate"
	if err := c.validate(op, req); err != nil {
		return nil, err
	}

	var resp Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   matrixPath,
		Params: endpoint.Params{"async": false},
		Body:   req,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) validate(op string, req Request) error {
	if len(req.Origins) == 0 {
		return c.caller.Invalid(op, "at least one origin is required")
	}
	if err := c.caller.Validate(op, req.Origins...); err != nil {
		return err
	}
	if err := c.caller.Validate(op, req.Destinations...); err != nil {
		return err
	}

	r := req.RegionDefinition
	switch r.Type {
	case RegionWorld, RegionAutoCircle:
	case RegionCircle:
		if r.Radius <= 0 {
			return c.caller.Invalid(op, "circle region requires a positive radius")
		}
		return c.caller.Validate(op, r.Center)
	case RegionBoundingBox:
		return c.caller.Validate(op, r.Box.TopLeft, r.Box.BottomRight)
	case "":
		return c.caller.Invalid(op, "region definition is required")
	default:
		return c.caller.Invalid(op, "unknown region type %q", r.Type)
	}
	return nil
}
