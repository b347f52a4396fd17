package geocoder

import (
	"context"
	"strings"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// AutosuggestServiceName identifies the autosuggest service.
	AutosuggestServiceName = "autosuggest"

	// DefaultAutosuggestBaseURL is the autosuggest API base URL.
	DefaultAutosuggestBaseURL = "https://autosuggest.search.hereapi.com"

	// DefaultRadius is the autosuggest search radius in meters.
	DefaultRadius = 500
)

var autosuggestDescriptor = endpoint.Descriptor{
	Service:    AutosuggestServiceName,
	SuccessKey: "items",
	Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.TitleCauseRule},
}

// AutosuggestClient completes partial queries around a position.
type AutosuggestClient struct {
	caller *endpoint.Caller
}

// NewAutosuggestClient creates a new autosuggest client.
func NewAutosuggestClient(cfg endpoint.Config) *AutosuggestClient {
	return &AutosuggestClient{caller: endpoint.NewCaller(AutosuggestServiceName, DefaultAutosuggestBaseURL, cfg)}
}

// Suggest returns completions for query within a circle around at.
func (c *AutosuggestClient) Suggest(ctx context.Context, query string, at geo.Coordinate, opts ...Option) (*Response, error) {
	const op = "Suggest"
	if strings.TrimSpace(query) == "" {
		return nil, c.caller.Invalid(op, "query must not be empty")
	}
	if err := c.caller.Validate(op, at); err != nil {
		return nil, err
	}

	o := apply(options{radius: DefaultRadius}, opts)
	if o.radius <= 0 {
		return nil, c.caller.Invalid(op, "radius must be positive, got %d", o.radius)
	}

	var resp Response
	if err := c.caller.Call(ctx, autosuggestDescriptor, endpoint.Request{
		Op:   op,
		Path: "/v1/autosuggest",
		Params: endpoint.Params{
			"q":     query,
			"in":    geo.FormatCircle(at, o.radius),
			"lang":  o.lang,
			"limit": o.limitParam(),
		},
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
