// Package routing provides a client for the legacy calculateroute API and the
// v8 routes API, including named-waypoint resolution through a geocoder.
package routing

import (
	"context"
	"strings"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/geocoder"
)

const (
	// ServiceName identifies the legacy routing API.
	ServiceName = "routing"

	// V8ServiceName identifies the v8 routes API.
	V8ServiceName = "routing-v8"

	// DefaultBaseURL is the legacy routing API base URL.
	DefaultBaseURL = "https://route.ls.hereapi.com"

	// DefaultV8BaseURL is the v8 routes API base URL.
	DefaultV8BaseURL = "https://router.hereapi.com"
)

// Geocoder resolves a place name to a position.
type Geocoder interface {
	Locate(ctx context.Context, query string) (geo.Coordinate, error)
}

// Place is a waypoint given either by position or by name. Named places are
// geocoded before the route request is sent.
type Place struct {
	Name     string
	Position geo.Coordinate
}

// At returns a Place at c.
func At(c geo.Coordinate) Place {
	return Place{Position: c}
}

// Named returns a Place to be resolved by name.
func Named(name string) Place {
	return Place{Name: name}
}

func (p Place) named() bool {
	return strings.TrimSpace(p.Name) != ""
}

// Client is a routing client.
type Client struct {
	legacy   *endpoint.Caller
	v8       *endpoint.Caller
	geocoder Geocoder
}

// NewClient creates a routing client. Named waypoints are resolved with a
// geocoder built from the same configuration.
func NewClient(cfg endpoint.Config) *Client {
	return NewClientWithGeocoder(cfg, geocoder.NewClient(cfg))
}

// NewClientWithGeocoder creates a routing client that resolves named
// waypoints with g.
func NewClientWithGeocoder(cfg endpoint.Config, g Geocoder) *Client {
	return &Client{
		legacy:   endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg),
		v8:       endpoint.NewCaller(V8ServiceName, DefaultV8BaseURL, cfg),
		geocoder: g,
	}
}

// resolve turns places into coordinates, geocoding named places one at a
// time in order. The first failure stops resolution.
func (c *Client) resolve(ctx context.Context, caller *endpoint.Caller, op string, places ...Place) ([]geo.Coordinate, error) {
	out := make([]geo.Coordinate, 0, len(places))
	for _, p := range places {
		if !p.named() {
			if err := caller.Validate(op, p.Position); err != nil {
				return nil, err
			}
			out = append(out, p.Position)
			continue
		}
		if c.geocoder == nil {
			return nil, caller.Invalid(op, "no geocoder configured to resolve %q", p.Name)
		}
		pos, err := c.geocoder.Locate(ctx, p.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, nil
}
