package geocoder

import "github.com/wayfarer/wayfarer/pkg/geo"

// Response is the result list shared by geocode, reverse geocode and
// autosuggest.
type Response struct {
	Items []Item `json:"items"`
}

// Item is one geocoding result.
type Item struct {
	Title           string           `json:"title"`
	ID              string           `json:"id"`
	ResultType      string           `json:"resultType"`
	HouseNumberType string           `json:"houseNumberType,omitempty"`
	Address         Address          `json:"address"`
	Position        geo.Coordinate   `json:"position"`
	Access          []geo.Coordinate `json:"access,omitempty"`
	Distance        int              `json:"distance,omitempty"`
	MapView         *MapView         `json:"mapView,omitempty"`
	Categories      []Category       `json:"categories,omitempty"`
	Scoring         *Scoring         `json:"scoring,omitempty"`
	Highlights      *Highlights      `json:"highlights,omitempty"`
}

// Address is the structured address of an Item.
type Address struct {
	Label       string `json:"label"`
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	StateCode   string `json:"stateCode,omitempty"`
	State       string `json:"state,omitempty"`
	County      string `json:"county,omitempty"`
	City        string `json:"city,omitempty"`
	District    string `json:"district,omitempty"`
	Street      string `json:"street,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
}

// MapView is the recommended viewport for an Item.
type MapView struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Category classifies a place result.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary,omitempty"`
}

// Scoring reports how well an Item matched the query.
type Scoring struct {
	QueryScore float64    `json:"queryScore"`
	FieldScore FieldScore `json:"fieldScore"`
}

// FieldScore holds per-field match scores between 0 and 1.
type FieldScore struct {
	Country     float64   `json:"country,omitempty"`
	State       float64   `json:"state,omitempty"`
	County      float64   `json:"county,omitempty"`
	City        float64   `json:"city,omitempty"`
	District    float64   `json:"district,omitempty"`
	Streets     []float64 `json:"streets,omitempty"`
	HouseNumber float64   `json:"houseNumber,omitempty"`
	PostalCode  float64   `json:"postalCode,omitempty"`
}

// Highlights marks the matched ranges of autosuggest results.
type Highlights struct {
	Title []Range `json:"title,omitempty"`
}

// Range is a [Start, End) character range.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
