// Package wayfarer bundles one client per geospatial service, all built from
// a single configuration.
package wayfarer

import (
	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/evcharging"
	"github.com/wayfarer/wayfarer/pkg/fleet"
	"github.com/wayfarer/wayfarer/pkg/geocoder"
	"github.com/wayfarer/wayfarer/pkg/isoline"
	"github.com/wayfarer/wayfarer/pkg/mapimage"
	"github.com/wayfarer/wayfarer/pkg/maptile"
	"github.com/wayfarer/wayfarer/pkg/matrix"
	"github.com/wayfarer/wayfarer/pkg/places"
	"github.com/wayfarer/wayfarer/pkg/rme"
	"github.com/wayfarer/wayfarer/pkg/routing"
	"github.com/wayfarer/wayfarer/pkg/traffic"
	"github.com/wayfarer/wayfarer/pkg/transit"
	"github.com/wayfarer/wayfarer/pkg/weather"
)

// Clients holds a client for every service.
type Clients struct {
	Geocoder    *geocoder.Client
	Reverse     *geocoder.ReverseClient
	Autosuggest *geocoder.AutosuggestClient
	Routing     *routing.Client
	Isoline     *isoline.Client
	Matrix      *matrix.Client
	Places      *places.Client
	Transit     *transit.Client
	Traffic     *traffic.Client
	MapImage    *mapimage.Client
	MapTile     *maptile.Client
	VectorTile  *maptile.VectorClient
	EVCharging  *evcharging.Client
	Fleet       *fleet.Client
	Weather     *weather.Client
	RME         *rme.Client
}

// New builds every client from cfg. The routing client resolves named places
// through the bundled geocoder.
func New(cfg endpoint.Config) *Clients {
	gc := geocoder.NewClient(cfg)
	return &Clients{
		Geocoder:    gc,
		Reverse:     geocoder.NewReverseClient(cfg),
		Autosuggest: geocoder.NewAutosuggestClient(cfg),
		Routing:     routing.NewClientWithGeocoder(cfg, gc),
		Isoline:     isoline.NewClient(cfg),
		Matrix:      matrix.NewClient(cfg),
		Places:      places.NewClient(cfg),
		Transit:     transit.NewClient(cfg),
		Traffic:     traffic.NewClient(cfg),
		MapImage:    mapimage.NewClient(cfg),
		MapTile:     maptile.NewClient(cfg),
		VectorTile:  maptile.NewVectorClient(cfg),
		EVCharging:  evcharging.NewClient(cfg),
		Fleet:       fleet.NewClient(cfg),
		Weather:     weather.NewClient(cfg),
		RME:         rme.NewClient(cfg),
	}
}

// FromEnv builds every client from WAYFARER_* environment variables.
func FromEnv() *Clients {
	return New(endpoint.ConfigFromEnv())
}
