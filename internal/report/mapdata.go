package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisdamba/commutetracker/internal/mapsapi"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	ColorDestination = "red"
	ColorHome        = "green"
	ColorStation     = "blue"
	ColorDrive       = "orange"
	ColorTransit     = "blue"
)

type Marker struct {
	Lat   float64  `json:"lat"`
	Lng   float64  `json:"lng"`
	Color string   `json:"color"`
	Popup []string `json:"popup"`
}

type Line struct {
	Points [][2]float64 `json:"points"`
	Color  string       `json:"color"`
	Popup  string       `json:"popup"`
}

// MapData is everything the Leaflet page draws.
type MapData struct {
	CenterLat float64  `json:"center_lat"`
	CenterLng float64  `json:"center_lng"`
	Zoom      int      `json:"zoom"`
	Markers   []Marker `json:"markers"`
	Lines     []Line   `json:"lines"`
}

// StationQuery is the geocoding query for a station row.
func StationQuery(name, address, prefix string) string {
	if strings.Contains(name, "Amtrak") {
		return fmt.Sprintf("%s, %s", name, address)
	}
	return strings.TrimSpace(prefix + " " + name)
}

type MapBuilder struct {
	maps     mapsapi.Provider
	geocoder mapsapi.Geocoder
	cfg      *models.Config
}

func NewMapBuilder(p mapsapi.Provider, g mapsapi.Geocoder, cfg *models.Config) *MapBuilder {
	if g == nil {
		g = p
	}
	return &MapBuilder{maps: p, geocoder: g, cfg: cfg}
}

// Build geocodes every row and fetches its drive and rail polylines.
// A row whose home or station cannot be geocoded is logged and skipped.
func (b *MapBuilder) Build(ctx context.Context, t *Table) MapData {
	data := MapData{
		CenterLat: b.cfg.MapCenterLat,
		CenterLng: b.cfg.MapCenterLng,
		Zoom:      b.cfg.MapZoom,
		Markers:   []Marker{},
		Lines:     []Line{},
	}

	for _, r := range t.Rows {
		dest := r.Get("destination_station")
		if dest == "" {
			continue
		}
		loc, err := b.geocoder.Geocode(ctx, dest)
		if err != nil {
			log.Debug().Err(err).Str("destination", dest).Msg("could not geocode destination station")
			continue
		}
		data.Markers = append(data.Markers, marker(loc, ColorDestination, "Destination: "+dest))
		break
	}

	for _, r := range t.Rows {
		if ctx.Err() != nil {
			break
		}
		b.addRow(ctx, &data, r)
	}

	return data
}

func (b *MapBuilder) addRow(ctx context.Context, data *MapData, r Row) {
	home := r.Get("home_address")
	homeLoc, err := b.geocoder.Geocode(ctx, home)
	if err != nil {
		log.Warn().Err(err).Str("address", home).Msg("could not geocode home address")
		return
	}
	data.Markers = append(data.Markers, marker(homeLoc, ColorHome,
		"Home: "+home,
		fmt.Sprintf("Total time: %s min", r.Get("total_time_mins"))))

	query := StationQuery(r.Get("station_name"), r.Get("station_address"), b.cfg.StationQueryPrefix)
	stationLoc, err := b.geocoder.Geocode(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("station", query).Msg("could not geocode station")
		return
	}
	data.Markers = append(data.Markers, marker(stationLoc, ColorStation,
		"Station: "+r.Get("station_name"),
		fmt.Sprintf("Drive: %s min", r.Get("drive_time_mins")),
		fmt.Sprintf("Transit: %s min", r.Get("transit_time_mins"))))

	drive, err := b.maps.Directions(ctx, mapsapi.DirectionsQuery{
		Origin:      home,
		Destination: stationLoc.String(),
		Mode:        models.TravelModeDriving,
	})
	if err != nil {
		log.Error().Err(err).Str("address", home).Msg("error fetching driving route")
	} else if len(drive) > 0 {
		data.Lines = append(data.Lines, line(drive[0].Polyline, ColorDrive, fmt.Sprintf("Drive: %s min", r.Get("drive_time_mins"))))
	}

	dest := r.Get("destination_station")
	if dest == "" {
		return
	}
	transit, err := b.maps.Directions(ctx, mapsapi.DirectionsQuery{
		Origin:      stationLoc.String(),
		Destination: dest,
		Mode:        models.TravelModeTransit,
		RailOnly:    true,
	})
	if err != nil {
		log.Error().Err(err).Str("station", query).Msg("error fetching transit route")
	} else if len(transit) > 0 {
		data.Lines = append(data.Lines, line(transit[0].Polyline, ColorTransit, fmt.Sprintf("Transit: %s min", r.Get("transit_time_mins"))))
	}
}

func marker(loc models.Location, color string, popup ...string) Marker {
	return Marker{Lat: loc.Lat, Lng: loc.Lng, Color: color, Popup: popup}
}

func line(pts []models.Location, color, popup string) Line {
	l := Line{Points: make([][2]float64, 0, len(pts)), Color: color, Popup: popup}
	for _, p := range pts {
		l.Points = append(l.Points, [2]float64{p.Lat, p.Lng})
	}
	return l
}
