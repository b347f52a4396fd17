package rme

import (
	"encoding/xml"
	"time"

	"github.com/wayfarer/wayfarer/pkg/geo"
)

// TrackPoint is one GPS fix. A zero Time is left out of the track.
type TrackPoint struct {
	Position geo.Coordinate
	Time     time.Time
}

type gpxDoc struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	Track   gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Time string  `xml:"time,omitempty"`
}

// EncodeGPX renders points as a single-segment GPX 1.1 track.
func EncodeGPX(points []TrackPoint) ([]byte, error) {
	doc := gpxDoc{
		Version: "1.1",
		Creator: "wayfarer",
		Xmlns:   "http://www.topografix.com/GPX/1/1",
	}
	doc.Track.Segment.Points = make([]gpxPoint, len(points))
	for i, p := range points {
		pt := gpxPoint{Lat: p.Position.Lat, Lon: p.Position.Lon}
		if !p.Time.IsZero() {
			pt.Time = p.Time.UTC().Format(time.RFC3339)
		}
		doc.Track.Segment.Points[i] = pt
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
