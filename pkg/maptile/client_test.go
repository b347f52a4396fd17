package maptile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/maptile"
)

var (
	brandenburgGate = geo.NewCoordinate(52.5163, 13.3777)
	png             = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
)

func testConfig(server *httptest.Server) endpoint.Config {
	return endpoint.Config{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Logger:     zerolog.Nop(),
	}
}

func tileServer(t *testing.T, seen **http.Request) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = r
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGet_Defaults(t *testing.T) {
	var seen *http.Request
	client := maptile.NewClient(testConfig(tileServer(t, &seen)))

	tile, err := client.Get(context.Background(), maptile.TileRequest{
		Position: brandenburgGate,
		Zoom:     12,
	})
	require.NoError(t, err)
	assert.Equal(t, png, tile)
	assert.Equal(t, "/maptile/2.1/maptile/newest/normal.day/12/2200/1343/256/png8", seen.URL.Path)
	assert.Equal(t, "mock123", seen.URL.Query().Get("apiKey"))
}

func TestGet_Overrides(t *testing.T) {
	var seen *http.Request
	client := maptile.NewClient(testConfig(tileServer(t, &seen)))

	_, err := client.Get(context.Background(), maptile.TileRequest{
		Base:     maptile.BaseAerial,
		Type:     "basetile",
		Version:  "newest",
		Scheme:   "satellite.day",
		Size:     512,
		Format:   "jpg",
		Position: brandenburgGate,
		Zoom:     15,
		Language: "ger",
		PPI:      320,
	})
	require.NoError(t, err)
	assert.Equal(t, "/maptile/2.1/basetile/newest/satellite.day/15/17601/10746/512/jpg", seen.URL.Path)
	assert.Equal(t, "ger", seen.URL.Query().Get("lg"))
	assert.Equal(t, "320", seen.URL.Query().Get("ppi"))
}

func TestGet_Validation(t *testing.T) {
	client := maptile.NewClient(endpoint.Config{BaseURL: "http://127.0.0.1:0", HTTPClient: http.DefaultClient, Logger: zerolog.Nop()})

	tests := []struct {
		name string
		req  maptile.TileRequest
	}{
		{"unknown base", maptile.TileRequest{Base: "night", Position: brandenburgGate}},
		{"zoom too deep", maptile.TileRequest{Position: brandenburgGate, Zoom: 21}},
		{"negative zoom", maptile.TileRequest{Position: brandenburgGate, Zoom: -1}},
		{"invalid position", maptile.TileRequest{Position: geo.NewCoordinate(0, 200)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Get(context.Background(), tt.req)
			assert.ErrorIs(t, err, endpoint.ErrInvalidArgument)
		})
	}
}

func TestGet_JSONFailureBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized","error_description":"apiKey invalid. apiKey not found."}`))
	}))
	defer server.Close()
	client := maptile.NewClient(testConfig(server))

	_, err := client.Get(context.Background(), maptile.TileRequest{Position: brandenburgGate, Zoom: 12})

	var e *endpoint.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, endpoint.KindUnauthorized, e.Kind)
	assert.Equal(t, "maptile-base", e.Service)
	assert.Equal(t, "apiKey invalid. apiKey not found.", e.Message)
	assert.ErrorIs(t, err, endpoint.ErrUnauthorized)
}

func TestVectorGet(t *testing.T) {
	var seen *http.Request
	client := maptile.NewVectorClient(testConfig(tileServer(t, &seen)))

	_, err := client.Get(context.Background(), maptile.VectorRequest{Position: brandenburgGate, Zoom: 12})
	require.NoError(t, err)
	assert.Equal(t, "/v2/vectortiles/base/mc/12/2200/1343/omv", seen.URL.Path)

	_, err = client.Get(context.Background(), maptile.VectorRequest{
		Layer:    "core",
		Position: brandenburgGate,
		Zoom:     15,
	})
	require.NoError(t, err)
	assert.Equal(t, "/v2/vectortiles/core/mc/15/17601/10746/omv", seen.URL.Path)
}

func TestVectorGet_ZoomOutOfRange(t *testing.T) {
	client := maptile.NewVectorClient(endpoint.Config{BaseURL: "http://127.0.0.1:0", HTTPClient: http.DefaultClient, Logger: zerolog.Nop()})

	_, err := client.Get(context.Background(), maptile.VectorRequest{Position: brandenburgGate, Zoom: 18})
	assert.ErrorIs(t, err, endpoint.ErrInvalidArgument)
}
