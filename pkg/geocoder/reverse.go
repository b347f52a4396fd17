package geocoder

import (
	"context"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ReverseServiceName identifies the reverse geocoder.
	ReverseServiceName = "revgeocoder"

	// DefaultReverseBaseURL is the reverse geocoding API base URL.
	DefaultReverseBaseURL = "https://revgeocode.search.hereapi.com"
)

var reverseDescriptor = endpoint.Descriptor{
	Service:    ReverseServiceName,
	SuccessKey: "items",
	Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.TitleCauseRule},
}

// ReverseClient resolves coordinates to addresses.
type ReverseClient struct {
	caller *endpoint.Caller
}

// NewReverseClient creates a new reverse geocoding client.
func NewReverseClient(cfg endpoint.Config) *ReverseClient {
	return &ReverseClient{caller: endpoint.NewCaller(ReverseServiceName, DefaultReverseBaseURL, cfg)}
}

// RetrieveAddresses returns the addresses nearest to at. The limit defaults
// to one result.
func (c *ReverseClient) RetrieveAddresses(ctx context.Context, at geo.Coordinate, opts ...Option) (*Response, error) {
	const op = "RetrieveAddresses"
	if err := c.caller.Validate(op, at); err != nil {
		return nil, err
	}

	o := apply(options{limit: 1}, opts)

	var resp Response
	if err := c.caller.Call(ctx, reverseDescriptor, endpoint.Request{
		Op:   op,
		Path: "/v1/revgeocode",
		Params: endpoint.Params{
			"at":    at,
			"lang":  o.lang,
			"limit": o.limitParam(),
		},
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
