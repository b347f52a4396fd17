package traffic

import "github.com/wayfarer/wayfarer/pkg/geo"

// IncidentsResponse is a legacy traffic incidents result.
type IncidentsResponse struct {
	Timestamp    string  `json:"TIMESTAMP"`
	Version      float64 `json:"VERSION"`
	TrafficItems struct {
		TrafficItem []Incident `json:"TRAFFIC_ITEM"`
	} `json:"TRAFFICITEMS"`
}

// Incident is one traffic item.
type Incident struct {
	ID          int64  `json:"TRAFFIC_ITEM_ID"`
	OriginalID  int64  `json:"ORIGINAL_TRAFFIC_ITEM_ID"`
	Status      string `json:"TRAFFIC_ITEM_STATUS_SHORT_DESC"`
	Type        string `json:"TRAFFIC_ITEM_TYPE_DESC"`
	StartTime   string `json:"START_TIME"`
	EndTime     string `json:"END_TIME"`
	Verified    bool   `json:"VERIFIED"`
	Criticality struct {
		ID          string `json:"ID"`
		Description string `json:"DESCRIPTION"`
	} `json:"CRITICALITY"`
	Location struct {
		Geoloc struct {
			Origin Point   `json:"ORIGIN"`
			To     []Point `json:"TO,omitempty"`
		} `json:"GEOLOC"`
	} `json:"LOCATION"`
	Description []struct {
		Value string `json:"value"`
		Type  string `json:"TYPE"`
	} `json:"TRAFFIC_ITEM_DESCRIPTION"`
}

// Point is an upper-case latitude/longitude object.
type Point struct {
	Latitude  float64 `json:"LATITUDE"`
	Longitude float64 `json:"LONGITUDE"`
}

// Coordinate converts p.
func (p Point) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Latitude, Lon: p.Longitude}
}

// FlowResponse is a legacy traffic flow result.
type FlowResponse struct {
	RWS              []RoadWays `json:"RWS"`
	CreatedTimestamp string     `json:"CREATED_TIMESTAMP"`
	Version          string     `json:"VERSION"`
	Units            string     `json:"UNITS"`
}

// RoadWays groups flow data for one map version.
type RoadWays struct {
	Type       string    `json:"TY"`
	MapVersion string    `json:"MAP_VERSION"`
	RW         []RoadWay `json:"RW"`
}

// RoadWay is a road with its flow items.
type RoadWay struct {
	ID          string `json:"LI"`
	Description string `json:"DE"`
	PublishedAt string `json:"PBT"`
	FIS         []struct {
		FI []FlowItem `json:"FI"`
	} `json:"FIS"`
}

// FlowItem is the flow on one road segment.
type FlowItem struct {
	TMC struct {
		PC int     `json:"PC"`
		DE string  `json:"DE"`
		QD string  `json:"QD"`
		LE float64 `json:"LE"`
	} `json:"TMC"`
	CF []CurrentFlow `json:"CF"`
}

// CurrentFlow holds speeds in the requested units and the jam factor, from
// 0 (free flow) to 10 (road closed).
type CurrentFlow struct {
	Type          string  `json:"TY"`
	Speed         float64 `json:"SP"`
	SpeedUncapped float64 `json:"SU"`
	FreeFlow      float64 `json:"FF"`
	JamFactor     float64 `json:"JF"`
	Confidence    float64 `json:"CN"`
}
