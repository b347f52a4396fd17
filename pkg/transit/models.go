package transit

import "github.com/wayfarer/wayfarer/pkg/geo"

// StationsResponse is a legacy station search result.
type StationsResponse struct {
	Res struct {
		Stations struct {
			Stn []Station `json:"Stn"`
		} `json:"Stations"`
	} `json:"Res"`
}

// Station is a legacy transit station. X is the longitude, Y the latitude.
type Station struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Distance   int     `json:"distance,omitempty"`
	Duration   string  `json:"duration,omitempty"`
	Transports *struct {
		Transport []Line `json:"Transport"`
	} `json:"Transports,omitempty"`
}

// Position returns the station's location.
func (s Station) Position() geo.Coordinate {
	return geo.Coordinate{Lat: s.Y, Lon: s.X}
}

// Line is a transit line serving a station or a departure.
type Line struct {
	Name string `json:"name"`
	Dir  string `json:"dir,omitempty"`
	Mode int    `json:"mode"`
	At   *struct {
		Category  string `json:"category,omitempty"`
		Color     string `json:"color,omitempty"`
		TextColor string `json:"textColor,omitempty"`
		Operator  string `json:"operator,omitempty"`
	} `json:"At,omitempty"`
}

// CoverageResponse lists the cities with transit coverage.
type CoverageResponse struct {
	Res struct {
		Coverage struct {
			Cities struct {
				City []City `json:"City"`
			} `json:"Cities"`
		} `json:"Coverage"`
	} `json:"Res"`
}

// City is a covered city.
type City struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	State     string  `json:"state,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Relevancy float64 `json:"relevancy,omitempty"`
	Updated   string  `json:"updated,omitempty"`
}

// DeparturesResponse is a legacy departure board.
type DeparturesResponse struct {
	Res struct {
		NextDepartures struct {
			Dep []Departure `json:"Dep"`
		} `json:"NextDepartures"`
	} `json:"Res"`
}

// Departure is one upcoming departure.
type Departure struct {
	Time      string `json:"time"`
	RealTime  string `json:"RT,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Transport Line   `json:"Transport"`
}

// ConnectionsResponse is a legacy transit route result.
type ConnectionsResponse struct {
	Res struct {
		Connections struct {
			Connection []Connection `json:"Connection"`
		} `json:"Connections"`
	} `json:"Res"`
}

// Connection is one journey option.
type Connection struct {
	ID        string `json:"id"`
	Duration  string `json:"duration"`
	Transfers int    `json:"transfers"`
	Dep       Stop   `json:"Dep"`
	Arr       Stop   `json:"Arr"`
	Sections  struct {
		Sec []ConnectionSection `json:"Sec"`
	} `json:"Sections"`
}

// Stop is the start or end of a connection or section.
type Stop struct {
	Time      string   `json:"time"`
	Station   *Station `json:"Stn,omitempty"`
	Transport *Line    `json:"Transport,omitempty"`
}

// ConnectionSection is one leg of a connection. Mode 20 is walking.
type ConnectionSection struct {
	ID   string `json:"id"`
	Mode int    `json:"mode"`
	Dep  Stop   `json:"Dep"`
	Arr  Stop   `json:"Arr"`
}
