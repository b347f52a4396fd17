// Package mapimage provides a client for rendered static map images.
package mapimage

import (
	"context"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the map image API.
	ServiceName = "mapimage"

	// DefaultBaseURL is the map image API base URL.
	DefaultBaseURL = "https://image.maps.ls.hereapi.com"

	MaxZoom = 20
)

var descriptor = endpoint.Descriptor{
	Service: ServiceName,
	Rules:   []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.InvalidRequestRule},
}

// Format is the image encoding.
type Format int

const (
	PNG Format = iota
	JPEG
	GIF
	BMP
	PNG8
	SVG
)

// Scheme is the map style.
type Scheme int

const (
	NormalDay Scheme = iota
	SatelliteDay
	TerrainDay
	HybridDay
	NormalDayTransit
	NormalDayGrey
	NormalDayMobile
	NormalNightMobile
	TerrainDayMobile
	HybridDayMobile
)

// Request describes the image. Exactly one of Center and BoundingBox must be
// set. Zoom applies to Center only.
type Request struct {
	Center      *geo.Coordinate
	BoundingBox *geo.BoundingBox
	Zoom        int
	Width       int
	Height      int
	Format      Format
	Scheme      Scheme
	Language    string // MARC three-letter code, e.g. "ger"
	PPI         int
	HideDot     bool
}

// Client is a map image client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new map image client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// Get renders the image described by req and returns the encoded bytes.
func (c *Client) Get(ctx context.Context, req Request) ([]byte, error) {
	const op = "Get"

	params := endpoint.Params{
		"f": int(req.Format),
		"t": int(req.Scheme),
	}
	switch {
	case req.Center != nil && req.BoundingBox != nil:
		return nil, c.caller.Invalid(op, "center and bounding box are mutually exclusive")
	case req.Center != nil:
		if err := c.caller.Validate(op, *req.Center); err != nil {
			return nil, err
		}
		if req.Zoom < 0 || req.Zoom > MaxZoom {
			return nil, c.caller.Invalid(op, "zoom must be between 0 and %d, got %d", MaxZoom, req.Zoom)
		}
		params["c"] = geo.FormatCoordinate(*req.Center)
		params["z"] = req.Zoom
	case req.BoundingBox != nil:
		if err := c.caller.Validate(op, req.BoundingBox.TopLeft, req.BoundingBox.BottomRight); err != nil {
			return nil, err
		}
		params["bbox"] = geo.FormatBoundingBox(*req.BoundingBox)
	default:
		return nil, c.caller.Invalid(op, "one of center or bounding box is required")
	}

	if req.Width < 0 || req.Height < 0 {
		return nil, c.caller.Invalid(op, "image size must not be negative")
	}
	params.SetIf(req.Width > 0, "w", req.Width)
	params.SetIf(req.Height > 0, "h", req.Height)
	params.SetIf(req.Language != "", "ml", req.Language)
	params.SetIf(req.PPI > 0, "ppi", req.PPI)
	params.SetIf(req.HideDot, "nodot", true)

	return c.caller.Fetch(ctx, descriptor, endpoint.Request{
		Op:     op,
		Path:   "/mia/1.6/mapview",
		Params: params,
	})
}
