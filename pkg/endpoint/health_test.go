package endpoint_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer/wayfarer/pkg/endpoint"
)

func TestHealthOf_DefaultClientReports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	caller := endpoint.NewCaller("health-probe", "https://unused.example.com", endpoint.Config{
		BaseURL: server.URL,
		Logger:  zerolog.Nop(),
	})

	h, ok := endpoint.HealthOf("health-probe")
	require.True(t, ok)
	assert.Equal(t, "closed", h.State)
	assert.True(t, h.Healthy())
	assert.Nil(t, h.LastSuccessAt)

	_, err := caller.Do(context.Background(), endpoint.Request{Op: "Probe", Path: "/"})
	require.NoError(t, err)

	h, ok = endpoint.HealthOf("health-probe")
	require.True(t, ok)
	assert.NotNil(t, h.LastSuccessAt)
	assert.Equal(t, uint32(1), h.Requests)

	var found bool
	for _, each := range endpoint.Healths() {
		if each.Service == "health-probe" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHealthOf_Unknown(t *testing.T) {
	_, ok := endpoint.HealthOf("never-created")
	assert.False(t, ok)
}
