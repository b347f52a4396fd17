// Package geo provides the value types shared by every service client and the
// formatters that turn them into the literal strings the services expect.
package geo

import (
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// NewCoordinate is shorthand for Coordinate{Lat: lat, Lon: lon}.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

// Validate checks that the coordinate lies within [-90,90] x [-180,180].
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

// String returns the "lat,lon" form.
func (c Coordinate) String() string {
	return FormatCoordinate(c)
}

// BoundingBox is a rectangle given by its north-west and south-east corners.
// Services expect TopLeft to be north of BottomRight; this is not checked.
type BoundingBox struct {
	TopLeft     Coordinate
	BottomRight Coordinate
}

// NewBoundingBox builds a box from its top-left and bottom-right corners.
func NewBoundingBox(topLeft, bottomRight Coordinate) BoundingBox {
	return BoundingBox{TopLeft: topLeft, BottomRight: bottomRight}
}

// Validate checks both corners.
func (b BoundingBox) Validate() error {
	if err := b.TopLeft.Validate(); err != nil {
		return err
	}
	return b.BottomRight.Validate()
}

// String returns the "tlLat,tlLon;brLat,brLon" form.
func (b BoundingBox) String() string {
	return FormatBoundingBox(b)
}

// West returns the western edge longitude.
func (b BoundingBox) West() float64 { return b.TopLeft.Lon }

// East returns the eastern edge longitude.
func (b BoundingBox) East() float64 { return b.BottomRight.Lon }

// North returns the northern edge latitude.
func (b BoundingBox) North() float64 { return b.TopLeft.Lat }

// South returns the southern edge latitude.
func (b BoundingBox) South() float64 { return b.BottomRight.Lat }

// ConsumptionPair is one entry of an EV speed/consumption table.
type ConsumptionPair struct {
	// Consumption in Wh/m.
	Consumption float64
	// Speed in km/h.
	Speed float64
}
