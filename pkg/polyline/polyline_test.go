package polyline

import (
	"errors"
	"math"
	"testing"
)

func TestDecode_ValidPolyline(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		expected []Coordinate
	}{
		{
			name:    "two dimensions",
			encoded: "BFoz5xJ67i1B1B7PzIhaxL7Y",
			expected: []Coordinate{
				{Lat: 50.10228, Lon: 8.69821},
				{Lat: 50.10201, Lon: 8.69567},
				{Lat: 50.10063, Lon: 8.6915},
				{Lat: 50.09878, Lon: 8.68752},
			},
		},
		{
			name:    "with altitude",
			encoded: "BlBoz5xJ67i1BU1B7PUzIhaUxL7YU",
			expected: []Coordinate{
				{Lat: 50.10228, Lon: 8.69821, Z: 10},
				{Lat: 50.10201, Lon: 8.69567, Z: 20},
				{Lat: 50.10063, Lon: 8.6915, Z: 30},
				{Lat: 50.09878, Lon: 8.68752, Z: 40},
			},
		},
		{
			name:    "crossing hemispheres",
			encoded: "BFg9tgKgm5xC__qvQgiipa",
			expected: []Coordinate{
				{Lat: 52.5, Lon: 13.4},
				{Lat: -33.9, Lon: 151.2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(tt.encoded)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d coordinates, got %d", len(tt.expected), len(result))
			}

			for i, coord := range result {
				if !coordsEqual(coord, tt.expected[i], 0.000001) {
					t.Errorf("coordinate %d: expected %+v, got %+v", i, tt.expected[i], coord)
				}
			}
		})
	}
}

func TestDecodeWithHeader(t *testing.T) {
	h, coords, err := DecodeWithHeader("BlBoz5xJ67i1BU1B7PUzIhaUxL7YU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Precision != 5 || h.ThirdDim != Altitude || h.ThirdDimPrecis != 0 {
		t.Errorf("unexpected header %+v", h)
	}
	if len(coords) != 4 {
		t.Errorf("expected 4 coordinates, got %d", len(coords))
	}
}

func TestDecode_EmptyString(t *testing.T) {
	result, err := Decode("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{"bad version", "CFoz5xJ", ErrUnsupportedVersion},
		{"bad character", "BFoz5x!J", ErrInvalidEncoding},
		{"truncated value", "BFoz5x", ErrInvalidEncoding},
		{"missing longitude", "BFoz5xJ", ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEncode_KnownVector(t *testing.T) {
	coords := []Coordinate{
		{Lat: 50.1022829, Lon: 8.6982122},
		{Lat: 50.1020076, Lon: 8.6956695},
		{Lat: 50.1006313, Lon: 8.6914960},
		{Lat: 50.0987800, Lon: 8.6875156},
	}

	encoded, err := Encode(coords, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != "BFoz5xJ67i1B1B7PzIhaxL7Y" {
		t.Errorf("unexpected encoding %q", encoded)
	}

	coords3d := []Coordinate{
		{Lat: 50.1022829, Lon: 8.6982122, Z: 10},
		{Lat: 50.1020076, Lon: 8.6956695, Z: 20},
		{Lat: 50.1006313, Lon: 8.6914960, Z: 30},
		{Lat: 50.0987800, Lon: 8.6875156, Z: 40},
	}
	encoded, err = EncodeWithHeader(coords3d, Header{Precision: 5, ThirdDim: Altitude})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != "BlBoz5xJ67i1BU1B7PUzIhaUxL7YU" {
		t.Errorf("unexpected encoding %q", encoded)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		coords    []Coordinate
		precision int
	}{
		{
			name:      "single point",
			coords:    []Coordinate{{Lat: 38.5, Lon: -120.2}},
			precision: 5,
		},
		{
			name: "Chicago to Sunnyvale",
			coords: []Coordinate{
				{Lat: 41.8842, Lon: -87.6388},
				{Lat: 37.36, Lon: -122.03},
			},
			precision: 5,
		},
		{
			name: "high precision",
			coords: []Coordinate{
				{Lat: 52.5308411, Lon: 13.3846955},
				{Lat: 52.5264071, Lon: 13.3807512},
			},
			precision: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.coords, tt.precision)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("round-trip: unexpected error: %v", err)
			}
			if len(decoded) != len(tt.coords) {
				t.Fatalf("round-trip: expected %d coordinates, got %d", len(tt.coords), len(decoded))
			}

			tolerance := math.Pow10(-tt.precision)
			for i, coord := range decoded {
				if !coordsEqual(coord, tt.coords[i], tolerance) {
					t.Errorf("round-trip coordinate %d: expected %+v, got %+v", i, tt.coords[i], coord)
				}
			}
		})
	}
}

func TestEncode_EmptyCoordinatesKeepsHeader(t *testing.T) {
	encoded, err := Encode(nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != "BF" {
		t.Errorf("expected header only, got %q", encoded)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected no coordinates, got %d", len(decoded))
	}
}

func TestEncode_InvalidPrecision(t *testing.T) {
	if _, err := Encode([]Coordinate{{Lat: 1, Lon: 1}}, 16); !errors.Is(err, ErrInvalidPrecision) {
		t.Errorf("expected ErrInvalidPrecision, got %v", err)
	}
}

func TestLength_ValidRoute(t *testing.T) {
	tests := []struct {
		name           string
		coords         []Coordinate
		expectedMeters float64
		tolerance      float64
	}{
		{
			name:           "empty",
			coords:         nil,
			expectedMeters: 0,
			tolerance:      0,
		},
		{
			name:           "single point",
			coords:         []Coordinate{{Lat: 52.0, Lon: 4.0}},
			expectedMeters: 0,
			tolerance:      0,
		},
		{
			name: "Frankfurt sample shape - roughly 870m",
			coords: []Coordinate{
				{Lat: 50.10228, Lon: 8.69821},
				{Lat: 50.10201, Lon: 8.69567},
				{Lat: 50.10063, Lon: 8.6915},
				{Lat: 50.09878, Lon: 8.68752},
			},
			expectedMeters: 870,
			tolerance:      10,
		},
		{
			name: "1 degree latitude at equator - roughly 111km",
			coords: []Coordinate{
				{Lat: 0.0, Lon: 0.0},
				{Lat: 1.0, Lon: 0.0},
			},
			expectedMeters: 111000,
			tolerance:      1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Length(tt.coords)
			diff := math.Abs(result - tt.expectedMeters)
			if diff > tt.tolerance {
				t.Errorf("expected ~%.0fm (±%.0f), got %.0fm", tt.expectedMeters, tt.tolerance, result)
			}
		})
	}
}

// coordsEqual checks if two coordinates are equal within a tolerance.
func coordsEqual(a, b Coordinate, tolerance float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tolerance &&
		math.Abs(a.Lon-b.Lon) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func BenchmarkDecode(b *testing.B) {
	encoded := "BlBoz5xJ67i1BU1B7PUzIhaUxL7YU"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(encoded)
	}
}
