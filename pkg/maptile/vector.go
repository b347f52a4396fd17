package maptile

import (
	"context"
	"fmt"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// VectorServiceName identifies the vector tile API.
	VectorServiceName = "vectortile"

	// DefaultVectorBaseURL is the vector tile API base URL.
	DefaultVectorBaseURL = "https://vector.hereapi.com"

	MaxVectorZoom = 17
)

var vectorDescriptor = descriptor(VectorServiceName)

// VectorRequest addresses one vector tile. Zero fields take the defaults
// base/mc/omv.
type VectorRequest struct {
	Layer      string // base or core
	Projection string
	Format     string
	Position   geo.Coordinate
	Zoom       int
}

// VectorClient fetches vector tiles.
type VectorClient struct {
	caller *endpoint.Caller
}

// NewVectorClient creates a vector tile client.
func NewVectorClient(cfg endpoint.Config) *VectorClient {
	return &VectorClient{caller: endpoint.NewCaller(VectorServiceName, DefaultVectorBaseURL, cfg)}
}

// Get fetches the vector tile containing req.Position at req.Zoom.
func (c *VectorClient) Get(ctx context.Context, req VectorRequest) ([]byte, error) {
	const op = "Get"

	if req.Layer == "" {
		req.Layer = "base"
	}
	if req.Projection == "" {
		req.Projection = "mc"
	}
	if req.Format == "" {
		req.Format = "omv"
	}
	if err := c.caller.Validate(op, req.Position); err != nil {
		return nil, err
	}
	if req.Zoom < 0 || req.Zoom > MaxVectorZoom {
		return nil, c.caller.Invalid(op, "zoom must be between 0 and %d, got %d", MaxVectorZoom, req.Zoom)
	}

	tile := geo.TileXY(req.Position, req.Zoom)
	return c.caller.Fetch(ctx, vectorDescriptor, endpoint.Request{
		Op: op,
		Path: fmt.Sprintf("/v2/vectortiles/%s/%s/%d/%d/%d/%s",
			req.Layer, req.Projection, tile.Zoom, tile.Column, tile.Row, req.Format),
	})
}
