// Package fleet provides a client for waypoint sequencing and pickup
// planning.
package fleet

import (
	"context"
	"strconv"
	"time"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the waypoint sequencing API.
	ServiceName = "fleet"

	// DefaultBaseURL is the waypoint sequencing API base URL.
	DefaultBaseURL = "https://wps.hereapi.com"
)

var descriptor = endpoint.Descriptor{
	Service:    ServiceName,
	SuccessKey: "results",
	Rules:      []endpoint.Rule{endpoint.UnauthorizedRule, endpoint.TitleCauseRule},
}

// Mode is one token of the routing mode, joined with ";".
type Mode string

const (
	ModeFastest         Mode = "fastest"
	ModeShortest        Mode = "shortest"
	ModeCar             Mode = "car"
	ModeTruck           Mode = "truck"
	ModePedestrian      Mode = "pedestrian"
	ModeTrafficEnabled  Mode = "traffic:enabled"
	ModeTrafficDisabled Mode = "traffic:disabled"
)

// Client is a waypoint sequencing client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new waypoint sequencing client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// FindSequence orders intermediate between start and end for the shortest
// trip. end is optional.
func (c *Client) FindSequence(ctx context.Context, start Waypoint, departure time.Time, intermediate []Waypoint, end *Waypoint, modes []Mode) (*Response, error) {
	const op = "FindSequence"

	params, err := c.waypointParams(op, start, departure, intermediate, end, modes)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, op, "/2/findsequence.json", params)
}

// FindPickups plans a pickup and drop-off tour for a vehicle of the given
// capacity. vehicleCost is charged per hour and drivingCost per kilometer.
func (c *Client) FindPickups(ctx context.Context, start Waypoint, departure time.Time, capacity int, vehicleCost, drivingCost float64, intermediate []Waypoint, end *Waypoint, modes []Mode) (*Response, error) {
	const op = "FindPickups"

	if capacity <= 0 {
		return nil, c.caller.Invalid(op, "capacity must be positive, got %d", capacity)
	}
	params, err := c.waypointParams(op, start, departure, intermediate, end, modes)
	if err != nil {
		return nil, err
	}
	params["capacity"] = capacity
	params["vehicleCost"] = vehicleCost
	params["drivingCost"] = drivingCost

	return c.call(ctx, op, "/2/findpickups.json", params)
}

func (c *Client) waypointParams(op string, start Waypoint, departure time.Time, intermediate []Waypoint, end *Waypoint, modes []Mode) (endpoint.Params, error) {
	if len(intermediate) == 0 {
		return nil, c.caller.Invalid(op, "at least one intermediate waypoint is required")
	}
	if len(modes) == 0 {
		return nil, c.caller.Invalid(op, "at least one mode is required")
	}

	all := append([]Waypoint{start}, intermediate...)
	if end != nil {
		all = append(all, *end)
	}
	for _, w := range all {
		if w.ID == "" {
			return nil, c.caller.Invalid(op, "waypoint id is required")
		}
		if err := c.caller.Validate(op, w.Position); err != nil {
			return nil, err
		}
	}

	params := endpoint.Params{
		"start": start.String(),
		"mode":  geo.Join(modes, ";"),
	}
	params.SetIf(!departure.IsZero(), "departure", departure)
	for i, w := range intermediate {
		params["destination"+strconv.Itoa(i+1)] = w.String()
	}
	if end != nil {
		params["end"] = end.String()
	}
	return params, nil
}

func (c *Client) call(ctx context.Context, op, path string, params endpoint.Params) (*Response, error) {
	var resp Response
	if err := c.caller.Call(ctx, descriptor, endpoint.Request{
		Op:     op,
		Path:   path,
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
