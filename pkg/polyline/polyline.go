// Package polyline encodes and decodes the flexible polyline format used for
// route section and isoline shapes.
//
// A flexible polyline starts with a format version and a header carrying the
// coordinate precision and an optional third dimension. Every value after the
// header is the zigzag-encoded delta from the previous point, written as a
// variable-length integer in 5-bit chunks over a URL-safe alphabet.
package polyline

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Version is the only supported format version.
	Version = 1

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

var (
	// ErrInvalidEncoding is returned for characters outside the alphabet or a
	// truncated value.
	ErrInvalidEncoding = errors.New("polyline: invalid encoding")

	// ErrUnsupportedVersion is returned when the header version is not 1.
	ErrUnsupportedVersion = errors.New("polyline: unsupported version")

	// ErrInvalidPrecision is returned when a precision does not fit the header.
	ErrInvalidPrecision = errors.New("polyline: invalid precision")
)

// ThirdDimension names the meaning of the optional third value of each point.
type ThirdDimension int

const (
	Absent    ThirdDimension = 0
	Level     ThirdDimension = 1
	Altitude  ThirdDimension = 2
	Elevation ThirdDimension = 3
	// 4 and 5 are reserved.
	Custom1 ThirdDimension = 6
	Custom2 ThirdDimension = 7
)

// Header describes how the points of a polyline are scaled.
type Header struct {
	Precision      int
	ThirdDim       ThirdDimension
	ThirdDimPrecis int
}

// Coordinate is one decoded point. Z is zero when the polyline carries no
// third dimension.
type Coordinate struct {
	Lat float64
	Lon float64
	Z   float64
}

var decodeTable = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
	}
	return t
}()

// Decode decodes a flexible polyline. An empty string decodes to nil.
func Decode(encoded string) ([]Coordinate, error) {
	_, coords, err := DecodeWithHeader(encoded)
	return coords, err
}

// DecodeWithHeader decodes a flexible polyline and also returns its header.
func DecodeWithHeader(encoded string) (Header, []Coordinate, error) {
	if encoded == "" {
		return Header{}, nil, nil
	}

	d := decoder{s: encoded}

	version, err := d.unsigned()
	if err != nil {
		return Header{}, nil, err
	}
	if version != Version {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	raw, err := d.unsigned()
	if err != nil {
		return Header{}, nil, err
	}
	h := Header{
		Precision:      int(raw & 15),
		ThirdDim:       ThirdDimension((raw >> 4) & 7),
		ThirdDimPrecis: int((raw >> 7) & 15),
	}

	latLonScale := math.Pow10(h.Precision)
	zScale := math.Pow10(h.ThirdDimPrecis)

	var (
		coords        []Coordinate
		lat, lon, alt int64
	)
	for !d.done() {
		dLat, err := d.signed()
		if err != nil {
			return h, nil, err
		}
		dLon, err := d.signed()
		if err != nil {
			return h, nil, err
		}
		lat += dLat
		lon += dLon

		c := Coordinate{
			Lat: float64(lat) / latLonScale,
			Lon: float64(lon) / latLonScale,
		}
		if h.ThirdDim != Absent {
			dAlt, err := d.signed()
			if err != nil {
				return h, nil, err
			}
			alt += dAlt
			c.Z = float64(alt) / zScale
		}
		coords = append(coords, c)
	}

	return h, coords, nil
}

type decoder struct {
	s   string
	pos int
}

func (d *decoder) done() bool {
	return d.pos >= len(d.s)
}

func (d *decoder) unsigned() (uint64, error) {
	var (
		result uint64
		shift  uint
	)
	for d.pos < len(d.s) {
		v := decodeTable[d.s[d.pos]]
		if v < 0 {
			return 0, fmt.Errorf("%w: character %q at %d", ErrInvalidEncoding, d.s[d.pos], d.pos)
		}
		d.pos++
		result |= uint64(v&0x1f) << shift
		if v&0x20 == 0 {
			return result, nil
		}
		shift += 5
		if shift > 60 {
			return 0, fmt.Errorf("%w: value too long", ErrInvalidEncoding)
		}
	}
	return 0, fmt.Errorf("%w: truncated value", ErrInvalidEncoding)
}

func (d *decoder) signed() (int64, error) {
	u, err := d.unsigned()
	if err != nil {
		return 0, err
	}
	if u&1 != 0 {
		return ^int64(u >> 1), nil
	}
	return int64(u >> 1), nil
}

// Encode encodes coords at the given latitude/longitude precision without a
// third dimension.
func Encode(coords []Coordinate, precision int) (string, error) {
	return EncodeWithHeader(coords, Header{Precision: precision})
}

// EncodeWithHeader encodes coords using h. Z values are written only when
// h.ThirdDim is not Absent.
func EncodeWithHeader(coords []Coordinate, h Header) (string, error) {
	if h.Precision < 0 || h.Precision > 15 || h.ThirdDimPrecis < 0 || h.ThirdDimPrecis > 15 {
		return "", ErrInvalidPrecision
	}
	if h.ThirdDim < Absent || h.ThirdDim > Custom2 {
		return "", fmt.Errorf("polyline: invalid third dimension %d", h.ThirdDim)
	}

	buf := make([]byte, 0, 2+len(coords)*8)
	buf = appendUnsigned(buf, Version)
	buf = appendUnsigned(buf, uint64(h.Precision)|uint64(h.ThirdDim)<<4|uint64(h.ThirdDimPrecis)<<7)

	latLonScale := math.Pow10(h.Precision)
	zScale := math.Pow10(h.ThirdDimPrecis)

	var lastLat, lastLon, lastZ int64
	for _, c := range coords {
		lat := int64(math.Round(c.Lat * latLonScale))
		lon := int64(math.Round(c.Lon * latLonScale))
		buf = appendSigned(buf, lat-lastLat)
		buf = appendSigned(buf, lon-lastLon)
		lastLat, lastLon = lat, lon

		if h.ThirdDim != Absent {
			z := int64(math.Round(c.Z * zScale))
			buf = appendSigned(buf, z-lastZ)
			lastZ = z
		}
	}

	return string(buf), nil
}

func appendUnsigned(buf []byte, v uint64) []byte {
	for v > 0x1f {
		buf = append(buf, alphabet[(v&0x1f)|0x20])
		v >>= 5
	}
	return append(buf, alphabet[v])
}

func appendSigned(buf []byte, v int64) []byte {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	return appendUnsigned(buf, u)
}

const earthRadiusMeters = 6371000

// Length calculates the total length of a polyline in meters using the haversine formula.
func Length(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(coords); i++ {
		total += haversineDistance(coords[i-1], coords[i])
	}
	return total
}

func haversineDistance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
