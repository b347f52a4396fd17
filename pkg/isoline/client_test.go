package isoline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/isoline"
)

var center = geo.NewCoordinate(52.5309, 13.3847)

func testConfig(server *httptest.Server) endpoint.Config {
	return endpoint.Config{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Logger:     zerolog.Nop(),
	}
}

func fixtureServer(t *testing.T, seen **http.Request) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile("testdata/isolines.json")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = r
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDistanceBased(t *testing.T) {
	var seen *http.Request
	client := isoline.NewClient(testConfig(fixtureServer(t, &seen)))

	resp, err := client.DistanceBased(context.Background(), center, []int{1000, 2000}, "car")
	require.NoError(t, err)

	assert.Equal(t, "/v8/isolines", seen.URL.Path)
	q := seen.URL.Query()
	assert.Equal(t, "52.5309,13.3847", q.Get("origin"))
	assert.Equal(t, "distance", q.Get("range[type]"))
	assert.Equal(t, "1000,2000", q.Get("range[values]"))
	assert.Equal(t, "car", q.Get("transportMode"))
	assert.False(t, q.Has("destination"))
	assert.False(t, q.Has("departureTime"))

	require.Len(t, resp.Isolines, 2)
	assert.Equal(t, isoline.Range{Type: "distance", Value: 1000}, resp.Isolines[0].Range)
	require.NotNil(t, resp.Departure)
	assert.InDelta(t, 52.5308, resp.Departure.Place.Location.Lat, 1e-9)

	outer, err := resp.Isolines[0].Polygons[0].OuterRing()
	require.NoError(t, err)
	assert.Len(t, outer, 4)

	inner, err := resp.Isolines[0].Polygons[0].InnerRings()
	require.NoError(t, err)
	require.Len(t, inner, 1)
	assert.InDelta(t, 52.5, inner[0][0].Lat, 1e-5)
	assert.InDelta(t, 151.2, inner[0][1].Lon, 1e-5)
}

func TestTimeBased(t *testing.T) {
	var seen *http.Request
	client := isoline.NewClient(testConfig(fixtureServer(t, &seen)))

	_, err := client.TimeBased(context.Background(), center, []int{300, 600, 900}, "pedestrian")
	require.NoError(t, err)
	assert.Equal(t, "time", seen.URL.Query().Get("range[type]"))
	assert.Equal(t, "300,600,900", seen.URL.Query().Get("range[values]"))
	assert.Equal(t, "pedestrian", seen.URL.Query().Get("transportMode"))
}

func TestConsumptionBased(t *testing.T) {
	var seen *http.Request
	client := isoline.NewClient(testConfig(fixtureServer(t, &seen)))

	_, err := client.ConsumptionBased(context.Background(), center, []int{20000}, isoline.EV{
		FreeFlowSpeedTable: []geo.ConsumptionPair{{Consumption: 0.239, Speed: 27}, {Consumption: 0.012, Speed: 45}},
		TrafficSpeedTable:  []geo.ConsumptionPair{{Consumption: 0.349, Speed: 27}},
		Ascent:             9,
		Descent:            4.3,
	})
	require.NoError(t, err)

	q := seen.URL.Query()
	assert.Equal(t, "consumption", q.Get("range[type]"))
	assert.Equal(t, "0,0.239,27,0.012,45", q.Get("ev[freeFlowSpeedTable]"))
	assert.Equal(t, "0,0.349,27", q.Get("ev[trafficSpeedTable]"))
	assert.Equal(t, "9", q.Get("ev[ascent]"))
	assert.Equal(t, "4.3", q.Get("ev[descent]"))
	assert.False(t, q.Has("ev[auxiliaryConsumption]"))
}

func TestCalculate_Destination(t *testing.T) {
	var seen *http.Request
	client := isoline.NewClient(testConfig(fixtureServer(t, &seen)))

	arrival := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	_, err := client.Calculate(context.Background(), isoline.Request{
		TransportMode:  "car",
		Destination:    &center,
		RangeType:      isoline.RangeTime,
		RangeValues:    []int{900},
		ArrivalTime:    &arrival,
		RoutingMode:    "short",
		OptimizeFor:    "quality",
		ShapeMaxPoints: 100,
	})
	require.NoError(t, err)

	q := seen.URL.Query()
	assert.Equal(t, "52.5309,13.3847", q.Get("destination"))
	assert.Equal(t, "2026-03-02T18:00:00Z", q.Get("arrivalTime"))
	assert.Equal(t, "short", q.Get("routingMode"))
	assert.Equal(t, "quality", q.Get("optimizeFor"))
	assert.Equal(t, "100", q.Get("shape[maxPoints]"))
	assert.False(t, q.Has("origin"))
}

func TestCalculate_Validation(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()
	client := isoline.NewClient(testConfig(server))

	now := time.Now()
	base := func() isoline.Request {
		return isoline.Request{
			TransportMode: "car",
			Origin:        &center,
			RangeType:     isoline.RangeDistance,
			RangeValues:   []int{1000},
		}
	}

	tests := []struct {
		name   string
		mutate func(*isoline.Request)
	}{
		{"no center", func(r *isoline.Request) { r.Origin = nil }},
		{"origin and destination", func(r *isoline.Request) { r.Destination = &center }},
		{"departure and arrival", func(r *isoline.Request) {
			r.Origin, r.Destination = nil, &center
			r.DepartureTime, r.ArrivalTime = &now, &now
		}},
		{"arrival with origin", func(r *isoline.Request) { r.ArrivalTime = &now }},
		{"no transport mode", func(r *isoline.Request) { r.TransportMode = "" }},
		{"no range values", func(r *isoline.Request) { r.RangeValues = nil }},
		{"consumption without ev", func(r *isoline.Request) { r.RangeType = isoline.RangeConsumption }},
		{"invalid center", func(r *isoline.Request) {
			bad := geo.NewCoordinate(100, 0)
			r.Origin = &bad
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			_, err := client.Calculate(context.Background(), req)
			assert.ErrorIs(t, err, endpoint.ErrInvalidArgument)
		})
	}
	assert.Equal(t, int32(0), requests.Load())
}

func TestCalculate_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized","error_description":"Invalid token"}`))
	}))
	defer server.Close()
	client := isoline.NewClient(testConfig(server))

	_, err := client.DistanceBased(context.Background(), center, []int{1000}, "car")
	assert.ErrorIs(t, err, endpoint.ErrUnauthorized)

	var e *endpoint.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Invalid token", e.Message)
	assert.Equal(t, "DistanceBased", e.Op)
}
