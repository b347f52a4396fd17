package weather

import (
	"strconv"
	"time"

	"github.com/wayfarer/wayfarer/pkg/geo"
)

// Response holds the report for one product. Only the field of the
// requested product is set.
type Response struct {
	Observations    *Observations    `json:"observations,omitempty"`
	Forecasts       *Forecasts       `json:"forecasts,omitempty"`
	DailyForecasts  *Forecasts       `json:"dailyForecasts,omitempty"`
	HourlyForecasts *Forecasts       `json:"hourlyForecasts,omitempty"`
	Astronomy       *AstronomyReport `json:"astronomy,omitempty"`
	Alerts          *AlertsReport    `json:"alerts,omitempty"`
	NWSAlerts       *NWSAlertsReport `json:"nwsAlerts,omitempty"`
	FeedCreation    time.Time        `json:"feedCreation"`
	Metric          bool             `json:"metric"`
}

// Location is the place a report was resolved to.
type Location struct {
	Country   string  `json:"country"`
	State     string  `json:"state"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"`
	Timezone  float64 `json:"timezone"`
}

// Coordinate returns the resolved position.
func (l Location) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(l.Latitude, l.Longitude)
}

// Observations lists current conditions per nearby station.
type Observations struct {
	Location []ObservationLocation `json:"location"`
}

// ObservationLocation is one reporting station.
type ObservationLocation struct {
	Location
	Observation []Conditions `json:"observation"`
}

// Conditions is one observed or forecast period. Numeric values are sent as
// strings, with "*" for unavailable readings.
type Conditions struct {
	DaySegment               string    `json:"daySegment,omitempty"`
	Daylight                 string    `json:"daylight"`
	Description              string    `json:"description"`
	SkyInfo                  string    `json:"skyInfo"`
	SkyDescription           string    `json:"skyDescription"`
	Temperature              string    `json:"temperature"`
	TemperatureDesc          string    `json:"temperatureDesc"`
	Comfort                  string    `json:"comfort"`
	HighTemperature          string    `json:"highTemperature"`
	LowTemperature           string    `json:"lowTemperature"`
	Humidity                 string    `json:"humidity"`
	DewPoint                 string    `json:"dewPoint"`
	PrecipitationProbability string    `json:"precipitationProbability"`
	PrecipitationDesc        string    `json:"precipitationDesc"`
	RainFall                 string    `json:"rainFall"`
	SnowFall                 string    `json:"snowFall"`
	AirInfo                  string    `json:"airInfo"`
	AirDescription           string    `json:"airDescription"`
	WindSpeed                string    `json:"windSpeed"`
	WindDirection            string    `json:"windDirection"`
	WindDesc                 string    `json:"windDesc"`
	WindDescShort            string    `json:"windDescShort"`
	UVIndex                  string    `json:"uvIndex"`
	UVDesc                   string    `json:"uvDesc"`
	BarometerPressure        string    `json:"barometerPressure"`
	Visibility               string    `json:"visibility"`
	IconName                 string    `json:"iconName"`
	IconLink                 string    `json:"iconLink"`
	DayOfWeek                string    `json:"dayOfWeek"`
	Weekday                  string    `json:"weekday"`
	UTCTime                  time.Time `json:"utcTime"`
	LocalTime                string    `json:"localTime"`
}

// Celsius parses Temperature. It reports false for unavailable readings.
func (c Conditions) Celsius() (float64, bool) {
	v, err := strconv.ParseFloat(c.Temperature, 64)
	return v, err == nil
}

// Forecasts is a forecast series for one location.
type Forecasts struct {
	ForecastLocation ForecastLocation `json:"forecastLocation"`
}

// ForecastLocation holds the forecast periods of a location.
type ForecastLocation struct {
	Location
	Forecast []Conditions `json:"forecast"`
}

// AstronomyReport lists sun and moon times per day.
type AstronomyReport struct {
	Location
	Astronomy []Astronomy `json:"astronomy"`
}

// Astronomy is one day's sun and moon times, in local clock time.
type Astronomy struct {
	Sunrise       string    `json:"sunrise"`
	Sunset        string    `json:"sunset"`
	Moonrise      string    `json:"moonrise"`
	Moonset       string    `json:"moonset"`
	MoonPhase     float64   `json:"moonPhase"`
	MoonPhaseDesc string    `json:"moonPhaseDesc"`
	IconName      string    `json:"iconName"`
	City          string    `json:"city"`
	UTCTime       time.Time `json:"utcTime"`
}

// AlertsReport lists weather alerts for a location.
type AlertsReport struct {
	Location
	Alerts []Alert `json:"alerts"`
}

// Alert is one alert with the periods it applies to.
type Alert struct {
	TimeSegment []TimeSegment `json:"timeSegment"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
}

// TimeSegment is a day part an alert covers.
type TimeSegment struct {
	Value     string `json:"value"`
	Segment   string `json:"segment"`
	DayOfWeek string `json:"day_of_week"`
}

// NWSAlertsReport holds US National Weather Service warnings and watches.
type NWSAlertsReport struct {
	Warning []NWSAlert `json:"warning"`
	Watch   []NWSAlert `json:"watch"`
}

// NWSAlert is one warning or watch.
type NWSAlert struct {
	Type        int     `json:"type"`
	Description string  `json:"description"`
	Severity    int     `json:"severity"`
	Message     string  `json:"message"`
	Name        string  `json:"name"`
	ValidFrom   string  `json:"validFromTimeLocal"`
	ValidUntil  string  `json:"validUntilTimeLocal"`
	Country     string  `json:"country"`
	State       string  `json:"state"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
