// Package maptile provides clients for raster map tiles and vector tiles.
package maptile

import (
	"context"
	"fmt"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the raster tile API. Each base host is
	// registered under ServiceName plus the base, e.g. "maptile-aerial".
	ServiceName = "maptile"

	MaxZoom = 20
)

// Base selects the raster tile host.
type Base string

const (
	BaseMap     Base = "base"
	BaseAerial  Base = "aerial"
	BaseTraffic Base = "traffic"
)

// DefaultBaseURLs maps each base to its host.
var DefaultBaseURLs = map[Base]string{
	BaseMap:     "https://1.base.maps.ls.hereapi.com",
	BaseAerial:  "https://1.aerial.maps.ls.hereapi.com",
	BaseTraffic: "https://1.traffic.maps.ls.hereapi.com",
}

// TileRequest addresses one raster tile. Zero fields take the defaults
// maptile/newest/normal.day/256/png8.
type TileRequest struct {
	Base     Base
	Type     string // maptile, basetile, labeltile, alabeltile, streettile, trucktile, flowtile
	Version  string
	Scheme   string
	Size     int // 256 or 512
	Format   string
	Position geo.Coordinate
	Zoom     int

	Language string
	PPI      int
}

func (r TileRequest) withDefaults() TileRequest {
	if r.Base == "" {
		r.Base = BaseMap
	}
	if r.Type == "" {
		r.Type = "maptile"
	}
	if r.Version == "" {
		r.Version = "newest"
	}
	if r.Scheme == "" {
		r.Scheme = "normal.day"
	}
	if r.Size == 0 {
		r.Size = 256
	}
	if r.Format == "" {
		r.Format = "png8"
	}
	return r
}

// Client fetches raster tiles.
type Client struct {
	callers map[Base]*endpoint.Caller
}

// NewClient creates a raster tile client. cfg.BaseURL, when set, replaces the
// host of every base.
func NewClient(cfg endpoint.Config) *Client {
	callers := make(map[Base]*endpoint.Caller, len(DefaultBaseURLs))
	for base, url := range DefaultBaseURLs {
		callers[base] = endpoint.NewCaller(ServiceName+"-"+string(base), url, cfg)
	}
	return &Client{callers: callers}
}

// Get fetches the tile containing req.Position at req.Zoom.
func (c *Client) Get(ctx context.Context, req TileRequest) ([]byte, error) {
	const op = "Get"

	req = req.withDefaults()
	caller, ok := c.callers[req.Base]
	if !ok {
		return nil, endpoint.Invalid(ServiceName, op, "unknown tile base %q", req.Base)
	}
	if err := caller.Validate(op, req.Position); err != nil {
		return nil, err
	}
	if req.Zoom < 0 || req.Zoom > MaxZoom {
		return nil, caller.Invalid(op, "zoom must be between 0 and %d, got %d", MaxZoom, req.Zoom)
	}

	tile := geo.TileXY(req.Position, req.Zoom)
	path := fmt.Sprintf("/maptile/2.1/%s/%s/%s/%d/%d/%d/%d/%s",
		req.Type, req.Version, req.Scheme, tile.Zoom, tile.Column, tile.Row, req.Size, req.Format)

	params := endpoint.Params{}
	params.SetIf(req.Language != "", "lg", req.Language)
	params.SetIf(req.PPI > 0, "ppi", req.PPI)

	return caller.Fetch(ctx, descriptor(caller.Service()), endpoint.Request{
		Op:     op,
		Path:   path,
		Params: params,
	})
}

func descriptor(service string) endpoint.Descriptor {
	return endpoint.Descriptor{
		Service: service,
		Rules:   []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.InvalidRequestRule, endpoint.ErrorDescriptionRule},
	}
}
