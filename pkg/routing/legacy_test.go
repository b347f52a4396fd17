package routing_test

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
	"github.com/wayfarer/wayfarer/pkg/routing"
)

func testConfig(server *httptest.Server) endpoint.Config {
	return endpoint.Config{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Logger:     zerolog.Nop(),
	}
}

var (
	brandenburgerTor = geo.NewCoordinate(52.5160, 13.3779)
	friedrichstrasse = geo.NewCoordinate(52.5206, 13.3862)
)

func fixtureServer(t *testing.T, name string, seen **http.Request) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = r
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCarRoute(t *testing.T) {
	var seen *http.Request
	server := fixtureServer(t, "calculateroute.json", &seen)
	client := routing.NewClient(testConfig(server))

	resp, err := client.CarRoute(context.Background(), brandenburgerTor, friedrichstrasse, nil)
	require.NoError(t, err)

	assert.Equal(t, "/routing/7.2/calculateroute.json", seen.URL.Path)
	q := seen.URL.Query()
	assert.Equal(t, "car;fastest", q.Get("mode"))
	assert.Equal(t, "geo!52.516,13.3779", q.Get("waypoint0"))
	assert.Equal(t, "geo!52.5206,13.3862", q.Get("waypoint1"))
	assert.Equal(t, "now", q.Get("departure"))
	assert.Equal(t, "mock123", q.Get("apiKey"))

	require.Len(t, resp.Response.Route, 1)
	route := resp.Response.Route[0]
	assert.Equal(t, 1357, route.Summary.Distance)
	assert.Equal(t, []string{"car"}, route.Mode.TransportModes)
	require.Len(t, route.Leg, 1)
	assert.Len(t, route.Leg[0].Maneuver, 5)
	assert.Equal(t, "PrivateTransportManeuverType", route.Leg[0].Maneuver[0].Type)
	assert.InDelta(t, 52.5160157, route.Waypoint[0].MappedPosition.Coordinate().Lat, 1e-9)

	assert.Equal(t, "Dorotheenstraße; B96", resp.RouteShort)
}

func TestRouteModes(t *testing.T) {
	tests := []struct {
		name string
		call func(*routing.Client) (*routing.Response, error)
		mode string
	}{
		{
			name: "pedestrian default",
			call: func(c *routing.Client) (*routing.Response, error) {
				return c.PedestrianRoute(context.Background(), brandenburgerTor, friedrichstrasse, nil)
			},
			mode: "pedestrian;fastest",
		},
		{
			name: "bicycle default",
			call: func(c *routing.Client) (*routing.Response, error) {
				return c.BicycleRoute(context.Background(), brandenburgerTor, friedrichstrasse, nil)
			},
			mode: "bicycle;fastest",
		},
		{
			name: "truck default",
			call: func(c *routing.Client) (*routing.Response, error) {
				return c.TruckRoute(context.Background(), brandenburgerTor, friedrichstrasse, nil)
			},
			mode: "truck;fastest",
		},
		{
			name: "explicit modes",
			call: func(c *routing.Client) (*routing.Response, error) {
				return c.CarRoute(context.Background(), brandenburgerTor, friedrichstrasse,
					[]routing.RouteMode{routing.ModeShortest, routing.ModeCar, routing.ModeTrafficDisabled})
			},
			mode: "shortest;car;traffic:disabled",
		},
		{
			name: "empty tokens skipped",
			call: func(c *routing.Client) (*routing.Response, error) {
				return c.CarRoute(context.Background(), brandenburgerTor, friedrichstrasse,
					[]routing.RouteMode{routing.ModeFastest, "", routing.ModeCar})
			},
			mode: "fastest;car",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *http.Request
			server := fixtureServer(t, "calculateroute.json", &seen)

			_, err := tt.call(routing.NewClient(testConfig(server)))
			require.NoError(t, err)
			assert.Equal(t, tt.mode, seen.URL.Query().Get("mode"))
		})
	}
}

func TestPedestrianRoute_StreetSummary(t *testing.T) {
	server := fixtureServer(t, "calculateroute.json", nil)
	client := routing.NewClient(testConfig(server))

	resp, err := client.PedestrianRoute(context.Background(), brandenburgerTor, friedrichstrasse, nil)
	require.NoError(t, err)
	assert.Equal(t, "Dorotheenstraße; Friedrichstraße", resp.RouteShort)
}

func TestIntermediateRoute(t *testing.T) {
	var seen *http.Request
	server := fixtureServer(t, "calculateroute.json", &seen)
	client := routing.NewClient(testConfig(server))

	_, err := client.IntermediateRoute(context.Background(),
		brandenburgerTor, geo.NewCoordinate(52.5185, 13.38), friedrichstrasse, nil)
	require.NoError(t, err)

	q := seen.URL.Query()
	assert.Equal(t, "geo!52.516,13.3779", q.Get("waypoint0"))
	assert.Equal(t, "geo!52.5185,13.38", q.Get("waypoint1"))
	assert.Equal(t, "geo!52.5206,13.3862", q.Get("waypoint2"))
}

func TestPublicTransport(t *testing.T) {
	var seen *http.Request
	server := fixtureServer(t, "calculateroute.json", &seen)
	client := routing.NewClient(testConfig(server))

	departure := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	_, err := client.PublicTransport(context.Background(), brandenburgerTor, friedrichstrasse, true, nil,
		routing.WithDeparture(departure), routing.WithLanguage("de-de"))
	require.NoError(t, err)

	q := seen.URL.Query()
	assert.Equal(t, "publicTransport;fastest", q.Get("mode"))
	assert.Equal(t, "true", q.Get("combineChange"))
	assert.Equal(t, "2026-03-02T08:30:00Z", q.Get("departure"))
	assert.Equal(t, "de-de", q.Get("language"))
	assert.False(t, q.Has("arrival"))
}

func TestPublicTransportTimetable_Arrival(t *testing.T) {
	var seen *http.Request
	server := fixtureServer(t, "calculateroute.json", &seen)
	client := routing.NewClient(testConfig(server))

	arrival := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := client.PublicTransportTimetable(context.Background(), brandenburgerTor, friedrichstrasse, false, nil,
		routing.WithArrival(arrival))
	require.NoError(t, err)

	q := seen.URL.Query()
	assert.Equal(t, "publicTransportTimeTable;fastest", q.Get("mode"))
	assert.Equal(t, "2026-03-02T09:00:00Z", q.Get("arrival"))
	assert.False(t, q.Has("departure"))
	assert.Equal(t, "false", q.Get("combineChange"))
}

func TestDepartureAndArrivalExclusive(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()
	client := routing.NewClient(testConfig(server))

	now := time.Now()
	_, err := client.PublicTransportTimetable(context.Background(), brandenburgerTor, friedrichstrasse, false, nil,
		routing.WithDeparture(now), routing.WithArrival(now.Add(time.Hour)))

	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrInvalidArgument)
	assert.Equal(t, endpoint.KindGeneric, endpoint.KindOf(err))
	assert.Equal(t, int32(0), requests.Load())
}

func TestCarRoute_InvalidCoordinate(t *testing.T) {
	client := routing.NewClient(endpoint.Config{HTTPClient: http.DefaultClient})

	_, err := client.CarRoute(context.Background(), geo.NewCoordinate(95, 0), friedrichstrasse, nil)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}

func TestLegacyErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		kind    endpoint.Kind
		message string
	}{
		{
			name:    "unauthorized",
			body:    `{"error":"Unauthorized","error_description":"apiKey invalid. apiKey not found."}`,
			kind:    endpoint.KindUnauthorized,
			message: "apiKey invalid. apiKey not found.",
		},
		{
			name:    "no route",
			body:    `{"_type":"ns2:RoutingServiceErrorType","type":"ApplicationError","subtype":"NoRouteFound","details":"Error is NGEO_ERROR_GRAPH_DISCONNECTED"}`,
			kind:    endpoint.KindNoRouteFound,
			message: "Error is NGEO_ERROR_GRAPH_DISCONNECTED",
		},
		{
			name:    "waypoint not found",
			body:    `{"type":"ApplicationError","subtype":"WaypointNotFound","details":"Waypoint 0 could not be matched"}`,
			kind:    endpoint.KindWaypointNotFound,
			message: "Waypoint 0 could not be matched",
		},
		{
			name:    "invalid input",
			body:    `{"type":"ApplicationError","subtype":"InvalidInputData","details":"Invalid value for parameter mode"}`,
			kind:    endpoint.KindInvalidRequest,
			message: "Invalid value for parameter mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()
			client := routing.NewClient(testConfig(server))

			_, err := client.CarRoute(context.Background(), brandenburgerTor, friedrichstrasse, nil)
			require.Error(t, err)

			var e *endpoint.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, "CarRoute", e.Op)
			assert.Equal(t, routing.ServiceName, e.Service)
			assert.Equal(t, http.StatusBadRequest, e.StatusCode)
			assert.ErrorIs(t, err, tt.kind.Sentinel())
		})
	}
}

func TestRouteByName(t *testing.T) {
	routeBody, err := os.ReadFile("testdata/calculateroute.json")
	require.NoError(t, err)

	var (
		requests atomic.Int32
		route    *http.Request
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/v1/geocode":
			assert.Equal(t, "Friedrichstraße 1, Berlin", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`{"items":[{"position":{"lat":52.5206,"lng":13.3862}}]}`))
		default:
			route = r
			_, _ = w.Write(routeBody)
		}
	}))
	defer server.Close()
	client := routing.NewClient(testConfig(server))

	resp, err := client.RouteByName(context.Background(),
		routing.At(brandenburgerTor), routing.Named("Friedrichstraße 1, Berlin"), nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), requests.Load())
	require.NotNil(t, route)
	assert.Equal(t, "geo!52.516,13.3779", route.URL.Query().Get("waypoint0"))
	assert.Equal(t, "geo!52.5206,13.3862", route.URL.Query().Get("waypoint1"))
	assert.Equal(t, "car;fastest", route.URL.Query().Get("mode"))
	assert.NotEmpty(t, resp.RouteShort)
}

type stubGeocoder struct {
	calls   []string
	results map[string]geo.Coordinate
	err     error
}

func (s *stubGeocoder) Locate(_ context.Context, query string) (geo.Coordinate, error) {
	s.calls = append(s.calls, query)
	if s.err != nil {
		return geo.Coordinate{}, s.err
	}
	return s.results[query], nil
}

func TestRouteByName_SequentialLookups(t *testing.T) {
	var seen *http.Request
	server := fixtureServer(t, "calculateroute.json", &seen)

	g := &stubGeocoder{results: map[string]geo.Coordinate{
		"Brandenburger Tor": brandenburgerTor,
		"Friedrichstraße":   friedrichstrasse,
	}}
	client := routing.NewClientWithGeocoder(testConfig(server), g)

	resp, err := client.RouteByName(context.Background(),
		routing.Named("Brandenburger Tor"), routing.Named("Friedrichstraße"),
		[]routing.RouteMode{routing.ModePedestrian, routing.ModeFastest})
	require.NoError(t, err)

	assert.Equal(t, []string{"Brandenburger Tor", "Friedrichstraße"}, g.calls)
	assert.Equal(t, "pedestrian;fastest", seen.URL.Query().Get("mode"))
	assert.Equal(t, "Dorotheenstraße; Friedrichstraße", resp.RouteShort)
}

func TestRouteByName_GeocodeFailureStops(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()
	client := routing.NewClient(testConfig(server))

	_, err := client.RouteByName(context.Background(),
		routing.Named("Nowhere At All"), routing.Named("Friedrichstraße"), nil)
	require.Error(t, err)

	assert.Equal(t, endpoint.KindWaypointNotFound, endpoint.KindOf(err))
	assert.Equal(t, int32(1), requests.Load())
}

func TestRouteByName_GeocoderError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	g := &stubGeocoder{err: endpoint.ErrUnauthorized}
	client := routing.NewClientWithGeocoder(testConfig(server), g)

	_, err := client.RouteByName(context.Background(),
		routing.At(brandenburgerTor), routing.Named("Friedrichstraße"), nil)
	assert.ErrorIs(t, err, endpoint.ErrUnauthorized)
	assert.Equal(t, int32(0), requests.Load())
}

func TestRouteByName_NoGeocoder(t *testing.T) {
	client := routing.NewClientWithGeocoder(endpoint.Config{HTTPClient: http.DefaultClient}, nil)

	_, err := client.RouteByName(context.Background(),
		routing.At(brandenburgerTor), routing.Named("Friedrichstraße"), nil)
	assert.ErrorIs(t, err, endpoint.ErrInvalidArgument)
}
