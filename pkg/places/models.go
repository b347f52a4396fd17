package places

import (
	"github.com/wayfarer/wayfarer/pkg/geo"
	"github.com/wayfarer/wayfarer/pkg/geocoder"
)

// Response is a place search result list.
type Response struct {
	Items []Place `json:"items"`
}

// Place is a point of interest.
type Place struct {
	Title        string              `json:"title"`
	ID           string              `json:"id"`
	Language     string              `json:"language,omitempty"`
	ResultType   string              `json:"resultType"`
	Address      geocoder.Address    `json:"address"`
	Position     geo.Coordinate      `json:"position"`
	Access       []geo.Coordinate    `json:"access,omitempty"`
	Distance     int                 `json:"distance,omitempty"`
	Categories   []geocoder.Category `json:"categories,omitempty"`
	FoodTypes    []geocoder.Category `json:"foodTypes,omitempty"`
	References   []Reference         `json:"references,omitempty"`
	Contacts     []Contacts          `json:"contacts,omitempty"`
	OpeningHours []OpeningHours      `json:"openingHours,omitempty"`
}

// Reference links a place to an external supplier record.
type Reference struct {
	Supplier struct {
		ID string `json:"id"`
	} `json:"supplier"`
	ID string `json:"id"`
}

// Contacts groups the contact details of a place.
type Contacts struct {
	Phone  []Contact `json:"phone,omitempty"`
	Mobile []Contact `json:"mobile,omitempty"`
	WWW    []Contact `json:"www,omitempty"`
	Email  []Contact `json:"email,omitempty"`
}

// Contact is one contact detail.
type Contact struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// OpeningHours describes when a place is open.
type OpeningHours struct {
	Text       []string `json:"text"`
	IsOpen     bool     `json:"isOpen"`
	Categories []struct {
		ID string `json:"id"`
	} `json:"categories,omitempty"`
}
