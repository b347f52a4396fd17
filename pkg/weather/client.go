// Package weather provides a client for destination weather reports.
package weather

import (
	"context"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
)

const (
	// ServiceName identifies the destination weather API.
	ServiceName = "weather"

	// DefaultBaseURL is the destination weather API base URL.
	DefaultBaseURL = "https://weather.ls.hereapi.com"
)

// Product selects the report kind.
type Product string

const (
	Observation         Product = "observation"
	Forecast7Days       Product = "forecast_7days"
	Forecast7DaysSimple Product = "forecast_7days_simple"
	ForecastHourly      Product = "forecast_hourly"
	ForecastAstronomy   Product = "forecast_astronomy"
	Alerts              Product = "alerts"
	NWSAlerts           Product = "nws_alerts"
)

// productKeys maps each product to the response field that carries it.
var productKeys = map[Product]string{
	Observation:         "observations",
	Forecast7Days:       "forecasts",
	Forecast7DaysSimple: "dailyForecasts",
	ForecastHourly:      "hourlyForecasts",
	ForecastAstronomy:   "astronomy",
	Alerts:              "alerts",
	NWSAlerts:           "nwsAlerts",
}

// Key returns the response field for p, or "" for an unknown product.
func (p Product) Key() string {
	return productKeys[p]
}

// Option configures one weather call.
type Option func(*options)

type options struct {
	metric         bool
	language       string
	oneObservation bool
}

// WithImperial reports in imperial units instead of metric.
func WithImperial() Option {
	return func(o *options) {
		o.metric = false
	}
}

// WithLanguage sets the language of descriptions.
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithOneObservation limits observations to the nearest station.
func WithOneObservation() Option {
	return func(o *options) {
		o.oneObservation = true
	}
}

// Client is a destination weather client.
type Client struct {
	caller *endpoint.Caller
}

// NewClient creates a new destination weather client.
func NewClient(cfg endpoint.Config) *Client {
	return &Client{caller: endpoint.NewCaller(ServiceName, DefaultBaseURL, cfg)}
}

// ForecastForLocationName reports product for a place name such as
// "Berlin" or "New York, NY".
func (c *Client) ForecastForLocationName(ctx context.Context, name string, product Product, opts ...Option) (*Response, error) {
	const op = "ForecastForLocationName"

	if name == "" {
		return nil, c.caller.Invalid(op, "location name is required")
	}
	return c.report(ctx, op, product, endpoint.Params{"name": name}, opts)
}

// ForecastForZipCode reports product for a US zip code.
func (c *Client) ForecastForZipCode(ctx context.Context, zip string, product Product, opts ...Option) (*Response, error) {
	const op = "ForecastForZipCode"

	if zip == "" {
		return nil, c.caller.Invalid(op, "zip code is required")
	}
	return c.report(ctx, op, product, endpoint.Params{"zipcode": zip}, opts)
}

// ForecastForCoordinate reports product for a position.
func (c *Client) ForecastForCoordinate(ctx context.Context, at geo.Coordinate, product Product, opts ...Option) (*Response, error) {
	const op = "ForecastForCoordinate"

	if err := c.caller.Validate(op, at); err != nil {
		return nil, err
	}
	return c.report(ctx, op, product, endpoint.Params{
		"latitude":  at.Lat,
		"longitude": at.Lon,
	}, opts)
}

func (c *Client) report(ctx context.Context, op string, product Product, params endpoint.Params, opts []Option) (*Response, error) {
	key := product.Key()
	if key == "" {
		return nil, c.caller.Invalid(op, "unknown weather product %q", product)
	}

	o := options{metric: true}
	for _, opt := range opts {
		opt(&o)
	}

	params["product"] = string(product)
	params["metric"] = o.metric
	params.SetIf(o.language != "", "language", o.language)
	params.SetIf(o.oneObservation, "oneobservation", true)

	d := endpoint.Descriptor{
		Service:    ServiceName,
		SuccessKey: key,
		Rules:      []endpoint.Rule{endpoint.UnauthorizedRule},
	}

	var resp Response
	if err := c.caller.Call(ctx, d, endpoint.Request{
		Op:     op,
		Path:   "/weather/1.0/report.json",
		Params: params,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
