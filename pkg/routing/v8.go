package routing

import (
	"context"
	"strings"
	"time"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

// TransportMode is a v8 transport mode.
type TransportMode string

const (
	TransportCar        TransportMode = "car"
	TransportTruck      TransportMode = "truck"
	TransportPedestrian TransportMode = "pedestrian"
	TransportBicycle    TransportMode = "bicycle"
	TransportScooter    TransportMode = "scooter"
	TransportTaxi       TransportMode = "taxi"
	TransportBus        TransportMode = "bus"
)

// RoutingMode selects the v8 optimization.
type RoutingMode string

const (
	RoutingFast  RoutingMode = "fast"
	RoutingShort RoutingMode = "short"
)

var v8Descriptor = endpoint.Descriptor{
	Service:    V8ServiceName,
	SuccessKey: "routes",
	Rules:      []endpoint.Rule{endpoint.ErrorDescriptionRule, endpoint.TitleCauseRule},
}

// Avoid lists features and areas a v8 route must not use.
type Avoid struct {
	Features []string
	Areas    []geo.BoundingBox
}

// Truck describes the vehicle for truck routes. Zero fields are omitted.
type Truck struct {
	ShippedHazardousGoods []string
	GrossWeight           int // kg
	WeightPerAxle         int // kg
	Height                int // cm
	Width                 int // cm
	Length                int // cm
	AxleCount             int
	TrailerCount          int
	TunnelCategory        string
}

func (t *Truck) params(p endpoint.Params) {
	if t == nil {
		return
	}
	p.SetIf(len(t.ShippedHazardousGoods) > 0, "truck[shippedHazardousGoods]", strings.Join(t.ShippedHazardousGoods, ","))
	p.SetIf(t.GrossWeight > 0, "truck[grossWeight]", t.GrossWeight)
	p.SetIf(t.WeightPerAxle > 0, "truck[weightPerAxle]", t.WeightPerAxle)
	p.SetIf(t.Height > 0, "truck[height]", t.Height)
	p.SetIf(t.Width > 0, "truck[width]", t.Width)
	p.SetIf(t.Length > 0, "truck[length]", t.Length)
	p.SetIf(t.AxleCount > 0, "truck[axleCount]", t.AxleCount)
	p.SetIf(t.TrailerCount > 0, "truck[trailerCount]", t.TrailerCount)
	p.SetIf(t.TunnelCategory != "", "truck[tunnelCategory]", t.TunnelCategory)
}

// RouteRequest is a v8 route calculation.
type RouteRequest struct {
	TransportMode TransportMode
	Origin        Place
	Destination   Place
	Via           []geo.Coordinate

	// DepartureTime and ArrivalTime are mutually exclusive.
	DepartureTime *time.Time
	ArrivalTime   *time.Time

	RoutingMode      RoutingMode
	Alternatives     int
	Avoid            Avoid
	ExcludeCountries []string

	// Return selects the response attributes, e.g. "polyline", "summary".
	Return []string
	Spans  []string

	Truck *Truck
	Units string
	Lang  string
}

// Route calculates a v8 route. Named origin and destination places are
// geocoded first.
func (c *Client) Route(ctx context.Context, req RouteRequest) (*RoutesResponse, error) {
	const op = "Route"

	if req.TransportMode == "" {
		return nil, c.v8.Invalid(op, "transport mode is required")
	}
	if req.DepartureTime != nil && req.ArrivalTime != nil {
		return nil, c.v8.Invalid(op, "departure and arrival are mutually exclusive")
	}
	if err := c.v8.Validate(op, req.Via...); err != nil {
		return nil, err
	}
	for _, area := range req.Avoid.Areas {
		if err := c.v8.Validate(op, area.TopLeft, area.BottomRight); err != nil {
			return nil, err
		}
	}

	ends, err := c.resolve(ctx, c.v8, op, req.Origin, req.Destination)
	if err != nil {
		return nil, err
	}

	params := endpoint.Params{
		"transportMode": string(req.TransportMode),
		"origin":        geo.FormatCoordinate(ends[0]),
		"destination":   geo.FormatCoordinate(ends[1]),
	}
	if len(req.Via) > 0 {
		via := make([]string, len(req.Via))
		for i, v := range req.Via {
			via[i] = geo.FormatCoordinate(v)
		}
		params["via"] = via
	}
	params.SetIf(req.DepartureTime != nil, "departureTime", req.DepartureTime)
	params.SetIf(req.ArrivalTime != nil, "arrivalTime", req.ArrivalTime)
	params.SetIf(req.RoutingMode != "", "routingMode", string(req.RoutingMode))
	params.SetIf(req.Alternatives > 0, "alternatives", req.Alternatives)
	params.SetIf(len(req.Avoid.Features) > 0, "avoid[features]", geo.Join(req.Avoid.Features, ","))
	if len(req.Avoid.Areas) > 0 {
		areas := make([]string, len(req.Avoid.Areas))
		for i, a := range req.Avoid.Areas {
			areas[i] = a.Area()
		}
		params["avoid[areas]"] = strings.Join(areas, "|")
	}
	params.SetIf(len(req.ExcludeCountries) > 0, "exclude[countries]", geo.Join(req.ExcludeCountries, ","))
	params.SetIf(len(req.Return) > 0, "return", geo.Join(req.Return, ","))
	params.SetIf(len(req.Spans) > 0, "spans", geo.Join(req.Spans, ","))
	params.SetIf(req.Units != "", "units", req.Units)
	params.SetIf(req.Lang != "", "lang", req.Lang)
	req.Truck.params(params)

	var resp RoutesResponse
	if err := c.v8.Call(ctx, v8Descriptor, endpoint.Request{
		Op:     op,
		Path:   "/v8/routes",
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
