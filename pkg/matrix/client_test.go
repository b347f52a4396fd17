package matrix_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/matrix"
)

var (
	alexanderplatz = geo.NewCoordinate(52.5219, 13.4132)
	potsdamerPlatz = geo.NewCoordinate(52.5096, 13.3759)
)

func testConfig(server *httptest.Server) endpoint.Config {
	return endpoint.Config{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Logger:     zerolog.Nop(),
	}
}

func testRequest() matrix.Request {
	return matrix.Request{
		Origins:          []geo.Coordinate{alexanderplatz, potsdamerPlatz},
		RegionDefinition: matrix.Circle(geo.NewCoordinate(52.52, 13.405), 10000),
		MatrixAttributes: []string{matrix.AttributeTravelTimes, matrix.AttributeDistances},
		TransportMode:    "car",
	}
}

func TestCalculate(t *testing.T) {
	fixture, err := os.ReadFile("testdata/matrix.json")
	require.NoError(t, err)

	var (
		seen *http.Request
		body map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write(fixture)
	}))
	defer server.Close()
	client := matrix.NewClient(testConfig(server))

	resp, err := client.Calculate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.Method)
	assert.Equal(t, "/v8/matrix", seen.URL.Path)
	assert.Equal(t, "false", seen.URL.Query().Get("async"))
	assert.Equal(t, "mock123", seen.URL.Query().Get("apiKey"))
	assert.Equal(t, "application/json", seen.Header.Get("Content-Type"))

	origins := body["origins"].([]any)
	require.Len(t, origins, 2)
	assert.Equal(t, map[string]any{"lat": 52.5219, "lng": 13.4132}, origins[0])
	assert.NotContains(t, body, "destinations")
	assert.Equal(t, map[string]any{
		"type":   "circle",
		"center": map[string]any{"lat": 52.52, "lng": 13.405},
		"radius": float64(10000),
	}, body["regionDefinition"])
	assert.Equal(t, []any{"travelTimes", "distances"}, body["matrixAttributes"])

	assert.Equal(t, 2, resp.Matrix.NumOrigins)
	tt, ok := resp.Matrix.TravelTime(0, 1)
	assert.True(t, ok)
	assert.Equal(t, 712, tt)
	d, ok := resp.Matrix.Distance(0, 1)
	assert.True(t, ok)
	assert.Equal(t, 5231, d)

	_, ok = resp.Matrix.TravelTime(1, 0)
	assert.False(t, ok, "entry with an error code")
	_, ok = resp.Matrix.TravelTime(2, 0)
	assert.False(t, ok, "out of range")

	require.NotNil(t, resp.RegionDefinition)
	assert.Equal(t, matrix.RegionCircle, resp.RegionDefinition.Type)
	assert.Equal(t, 10000, resp.RegionDefinition.Radius)
}

func TestRegionJSON(t *testing.T) {
	tests := []struct {
		name   string
		region matrix.Region
		want   string
	}{
		{"world", matrix.World(), `{"type":"world"}`},
		{"auto circle", matrix.AutoCircle(500), `{"type":"autoCircle","margin":500}`},
		{
			"bounding box",
			matrix.Box(geo.NewBoundingBox(geo.NewCoordinate(52.6, 13.2), geo.NewCoordinate(0, 13.6))),
			`{"type":"boundingBox","north":52.6,"south":0,"west":13.2,"east":13.6}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.region)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestAvoidAndTruckJSON(t *testing.T) {
	req := testRequest()
	req.Avoid = &matrix.Avoid{
		Features: []string{"tollRoad"},
		Areas:    []geo.BoundingBox{geo.NewBoundingBox(geo.NewCoordinate(52.53, 13.38), geo.NewCoordinate(52.51, 13.41))},
	}
	req.Truck = &matrix.Truck{GrossWeight: 12000, AxleCount: 2}

	got, err := json.Marshal(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got, &body))
	assert.Equal(t, map[string]any{
		"features": []any{"tollRoad"},
		"areas": []any{map[string]any{
			"type": "boundingBox", "north": 52.53, "south": 52.51, "west": 13.38, "east": 13.41,
		}},
	}, body["avoid"])
	assert.Equal(t, map[string]any{"grossWeight": float64(12000), "axleCount": float64(2)}, body["truck"])
}

func TestCalculate_Validation(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()
	client := matrix.NewClient(testConfig(server))

	tests := []struct {
		name   string
		mutate func(*matrix.Request)
	}{
		{"no origins", func(r *matrix.Request) { r.Origins = nil }},
		{"invalid destination", func(r *matrix.Request) {
			r.Destinations = []geo.Coordinate{geo.NewCoordinate(0, -200)}
		}},
		{"missing region", func(r *matrix.Request) { r.RegionDefinition = matrix.Region{} }},
		{"circle without radius", func(r *matrix.Request) { r.RegionDefinition = matrix.Circle(alexanderplatz, 0) }},
		{"unknown region", func(r *matrix.Request) { r.RegionDefinition = matrix.Region{Type: "polygon"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(&req)
			_, err := client.Calculate(context.Background(), req)
			assert.ErrorIs(t, err, endpoint.ErrInvalidArgument)
		})
	}
	assert.Equal(t, int32(0), requests.Load())
}

func TestCalculate_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"Too many origins","status":400,"cause":"at most 10000 origins are allowed"}`))
	}))
	defer server.Close()
	client := matrix.NewClient(testConfig(server))

	_, err := client.Calculate(context.Background(), testRequest())

	var e *endpoint.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, endpoint.KindGeneric, e.Kind)
	assert.Equal(t, "Too many origins: at most 10000 origins are allowed", e.Message)
}
