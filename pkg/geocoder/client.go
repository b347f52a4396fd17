// Package geocoder provides clients for forward geocoding, reverse geocoding
// and autosuggest.
package geocoder

import (
	"context"
	"fmt"
	"strings"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the geocoder in errors, logs and health reports.
	ServiceName = "geocoder"

	// DefaultBaseURL is the geocoding API base URL.
	DefaultBaseURL = "https://geocode.search.hereapi.com"
)

var descriptor = endpoint.Descriptor{
	Service:    ServiceName,
	SuccessKey: "items",
	Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.TitleCauseRule},
}

// Client is a forward geocoding client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new geocoding client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// FreeForm geocodes a single-line address or place query.
func (c *Client) FreeForm(ctx context.Context, query string, opts ...Option) (*Response, error) {
	const op = "FreeForm"
	if strings.TrimSpace(query) == "" {
		return nil, c.caller.Invalid(op, "query must not be empty")
	}
	return c.geocode(ctx, op, endpoint.Params{"q": query}, opts)
}

// AddressWithBoundingBox geocodes query, restricting results to bbox.
func (c *Client) AddressWithBoundingBox(ctx context.Context, query string, bbox geo.BoundingBox, opts ...Option) (*Response, error) {
	const op = "AddressWithBoundingBox"
	if strings.TrimSpace(query) == "" {
		return nil, c.caller.Invalid(op, "query must not be empty")
	}
	if err := c.caller.Validate(op, bbox.TopLeft, bbox.BottomRight); err != nil {
		return nil, err
	}
	return c.geocode(ctx, op, endpoint.Params{"q": query, "in": bbox.Area()}, opts)
}

// AddressQuery is a structured address. Empty fields are omitted.
type AddressQuery struct {
	HouseNumber string
	Street      string
	District    string
	City        string
	County      string
	State       string
	PostalCode  string
	Country     string
}

func (a AddressQuery) qualified() string {
	fields := []struct{ key, value string }{
		{"houseNumber", a.HouseNumber},
		{"street", a.Street},
		{"district", a.District},
		{"city", a.City},
		{"county", a.County},
		{"state", a.State},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			parts = append(parts, f.key+"="+v)
		}
	}
	return strings.Join(parts, ";")
}

// AddressWithDetails geocodes a structured address.
func (c *Client) AddressWithDetails(ctx context.Context, addr AddressQuery, opts ...Option) (*Response, error) {
	const op = "AddressWithDetails"
	qq := addr.qualified()
	if qq == "" {
		return nil, c.caller.Invalid(op, "at least one address field is required")
	}
	return c.geocode(ctx, op, endpoint.Params{"qq": qq}, opts)
}

// StreetIntersection geocodes the crossing of street with the street given
// in city, e.g. "Main St and 5th Ave" in "Springfield".
func (c *Client) StreetIntersection(ctx context.Context, street, city string, opts ...Option) (*Response, error) {
	const op = "StreetIntersection"
	if strings.TrimSpace(street) == "" || strings.TrimSpace(city) == "" {
		return nil, c.caller.Invalid(op, "street and city are required")
	}
	qq := AddressQuery{Street: street, City: city}.qualified()
	return c.geocode(ctx, op, endpoint.Params{"qq": qq}, opts)
}

// Locate returns the position of the best match for query. A query without
// results is a WaypointNotFound error.
func (c *Client) Locate(ctx context.Context, query string) (geo.Coordinate, error) {
	resp, err := c.FreeForm(ctx, query, WithLimit(1))
	if err != nil {
		return geo.Coordinate{}, err
	}
	if len(resp.Items) == 0 {
		return geo.Coordinate{}, &endpoint.Error{
			Service: ServiceName,
			Op:      "Locate",
			Kind:    endpoint.KindWaypointNotFound,
			Message: fmt.Sprintf("no result for %q", query),
		}
	}
	return resp.Items[0].Position, nil
}

func (c *Client) geocode(ctx context.Context, op string, params endpoint.Params, opts []Option) (*Response, error) {
	o := apply(options{}, opts)
	params["lang"] = o.lang
	params["limit"] = o.limitParam()

	var resp Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:     op,
		Path:   "/v1/geocode",
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
