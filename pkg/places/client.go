// Package places provides a client for place discovery, browsing and lookup.
package places

import (
	"context"
	"strings"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the discover and browse APIs.
	ServiceName = "places"

	// LookupServiceName identifies the lookup API.
	LookupServiceName = "places-lookup"

	// DefaultBaseURL is the discover and browse API base URL.
	DefaultBaseURL = "https://discover.search.hereapi.com"

	// DefaultLookupBaseURL is the lookup API base URL.
	DefaultLookupBaseURL = "https://lookup.search.hereapi.com"

	DefaultLang  = "en-US"
	DefaultLimit = 20
)

var (
	descriptor = endpoint.Descriptor{
		Service:    ServiceName,
		SuccessKey: "items",
		Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.TitleCauseRule},
	}
	lookupDescriptor = endpoint.Descriptor{
		Service:    LookupServiceName,
		SuccessKey: "id",
		Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.TitleCauseRule},
	}
)

// Option configures one places call.
type Option func(*options)

type options struct {
	lang  string
	limit int
}

// WithLang sets the response language.
func WithLang(lang string) Option {
	return func(o *options) {
		o.lang = lang
	}
}

// WithLimit caps the number of results.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

func apply(opts []Option) options {
	o := options{lang: DefaultLang, limit: DefaultLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Client is a places client.
type Client struct {
	discover *endpoint.Caller
	lookup   *endpoint.Caller
}

// NewClient creates a new places client. cfg.BaseURL, when set, overrides
// both the discover and the lookup base URL.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{
		discover: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg),
		lookup:   endpoint.NewCaller(LookupServiceName, DefaultLookupBaseURL, cfg),
	}
}

// OneboxSearch finds places matching a free-text query near at.
func (c *Client) OneboxSearch(ctx context.Context, at geo.Coordinate, query string, opts ...Option) (*Response, error) {
	const op = "OneboxSearch"
	if err := c.checkQuery(op, query, at); err != nil {
		return nil, err
	}
	return c.search(ctx, op, "/v1/discover", endpoint.Params{
		"at": geo.FormatCoordinate(at),
		"q":  query,
	}, opts)
}

// SearchInCountry finds places matching query within the country given by
// its ISO 3166-1 alpha-3 code, ranked by distance from at.
func (c *Client) SearchInCountry(ctx context.Context, at geo.Coordinate, query, countryCode string, opts ...Option) (*Response, error) {
	const op = "SearchInCountry"
	if err := c.checkQuery(op, query, at); err != nil {
		return nil, err
	}
	if len(countryCode) != 3 {
		return nil, c.discover.Invalid(op, "country code must be ISO 3166-1 alpha-3, got %q", countryCode)
	}
	return c.search(ctx, op, "/v1/discover", endpoint.Params{
		"at": geo.FormatCoordinate(at),
		"q":  query,
		"in": "countryCode:" + strings.ToUpper(countryCode),
	}, opts)
}

// PlacesInCircle finds places matching query within radius meters of center.
func (c *Client) PlacesInCircle(ctx context.Context, center geo.Coordinate, radius int, query string, opts ...Option) (*Response, error) {
	const op = "PlacesInCircle"
	if err := c.checkQuery(op, query, center); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, c.discover.Invalid(op, "radius must be positive, got %d", radius)
	}
	return c.search(ctx, op, "/v1/discover", endpoint.Params{
		"in": geo.FormatCircle(center, radius),
		"q":  query,
	}, opts)
}

// Browse lists places of the given category ids around at, without a query.
func (c *Client) Browse(ctx context.Context, at geo.Coordinate, categories []string, opts ...Option) (*Response, error) {
	const op = "Browse"
	if err := c.discover.Validate(op, at); err != nil {
		return nil, err
	}
	params := endpoint.Params{"at": geo.FormatCoordinate(at)}
	params.SetIf(len(categories) > 0, "categories", geo.Join(categories, ","))
	return c.search(ctx, op, "/v1/browse", params, opts)
}

// Lookup returns the place with the given id.
func (c *Client) Lookup(ctx context.Context, id string, opts ...Option) (*Place, error) {
	const op = "Lookup"
	if strings.TrimSpace(id) == "" {
		return nil, c.lookup.Invalid(op, "id must not be empty")
	}
	o := apply(opts)

	var place Place
	if err := c.lookup.Call(ctx, lookupDescriptor, endpoint.Request{
		Op:     op,
		Path:   "/v1/lookup",
		Params: endpoint.Params{"id": id, "lang": o.lang},
	}, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (c *Client) checkQuery(op, query string, at geo.Coordinate) error {
	if strings.TrimSpace(query) == "" {
		return c.discover.Invalid(op, "query must not be empty")
	}
	return c.discover.Validate(op, at)
}

func (c *Client) search(ctx context.Context, op, path string, params endpoint.Params, opts []Option) (*Response, error) {
	o := apply(opts)
	params["lang"] = o.lang
	params.SetIf(o.limit > 0, "limit", o.limit)

	var resp Response
	if err := c.discover.Call(ctx, descriptor, endpoint.Request{
		Op:     op,
		Path:   path,
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
