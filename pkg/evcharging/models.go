package evcharging

import "github.com/wayfarer/wayfarer/pkg/geo"

// Response is the result of every station search.
type Response struct {
	HasMore    bool     `json:"hasMore"`
	Count      int      `json:"count"`
	EVStations Stations `json:"evStations"`
}

// Stations wraps the station list.
type Stations struct {
	EVStation []Station `json:"evStation"`
}

// Station is one charging site.
type Station struct {
	ID                      string        `json:"id"`
	Name                    string        `json:"name"`
	Distance                int           `json:"distance"`
	TotalNumberOfConnectors int           `json:"totalNumberOfConnectors"`
	Address                 Address       `json:"address"`
	Position                Position      `json:"position"`
	Connectors              Connectors    `json:"connectors"`
	Contacts                *Contacts     `json:"contacts,omitempty"`
	OpeningHours            *OpeningHours `json:"openingHours,omitempty"`
}

// Address is a station's postal address.
type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber,omitempty"`
	City        string `json:"city"`
	Region      string `json:"region,omitempty"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// Position is a station's location.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate returns the position as a coordinate.
func (p Position) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(p.Latitude, p.Longitude)
}

// Connectors wraps a station's connector list.
type Connectors struct {
	Connector []Connector `json:"connector"`
}

// Connector is one plug type at a station.
type Connector struct {
	SupplierName     string        `json:"supplierName,omitempty"`
	ConnectorType    Type          `json:"connectorType"`
	PowerFeedType    Type          `json:"powerFeedType"`
	MaxPowerLevel    float64       `json:"maxPowerLevel"`
	ChargeCapacity   string        `json:"chargeCapacity,omitempty"`
	FixedCable       bool          `json:"fixedCable"`
	ConnectorDetails *Details      `json:"connectorDetails,omitempty"`
}

// Type is a coded value with a display name.
type Type struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Details counts the connectors of one type.
type Details struct {
	PrivateAccess      bool `json:"privateAccess"`
	EnergyProvider     bool `json:"energyProvider"`
	NumberOfConnectors int  `json:"numberOfConnectors"`
}

// Contacts lists a station's contact channels.
type Contacts struct {
	Phone   []string `json:"phone,omitempty"`
	Website []string `json:"website,omitempty"`
}

// OpeningHours describes when a station is accessible.
type OpeningHours struct {
	Text string `json:"text"`
}
