package mapsapi

import (
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
	"googlemaps.github.io/maps"
)

func fromLatLng(l maps.LatLng) models.Location {
	return models.Location{Lat: l.Lat, Lng: l.Lng}
}

func toLatLng(l models.Location) *maps.LatLng {
	return &maps.LatLng{Lat: l.Lat, Lng: l.Lng}
}

func toMode(m models.TravelMode) maps.Mode {
	switch m {
	case models.TravelModeTransit:
		return maps.TravelModeTransit
	case models.TravelModeWalking:
		return maps.TravelModeWalking
	default:
		return maps.TravelModeDriving
	}
}

func fromRoute(r *maps.Route) models.Route {
	out := models.Route{Summary: r.Summary}

	for _, leg := range r.Legs {
		if leg == nil {
			continue
		}
		out.Legs = append(out.Legs, fromLeg(leg))
	}

	if r.OverviewPolyline.Points != "" {
		pts, err := r.OverviewPolyline.Decode()
		if err != nil {
			log.Debug().Err(err).Str("route", r.Summary).Msg("could not decode overview polyline")
		}
		for _, p := range pts {
			out.Polyline = append(out.Polyline, fromLatLng(p))
		}
	}

	return out
}

func fromLeg(l *maps.Leg) models.Leg {
	leg := models.Leg{
		StartAddress:      l.StartAddress,
		EndAddress:        l.EndAddress,
		StartLocation:     fromLatLng(l.StartLocation),
		EndLocation:       fromLatLng(l.EndLocation),
		Duration:          l.Duration,
		DurationInTraffic: l.DurationInTraffic,
		DistanceM:         l.Distance.Meters,
		DepartureTime:     l.DepartureTime,
		ArrivalTime:       l.ArrivalTime,
	}

	for _, s := range l.Steps {
		if s == nil {
			continue
		}
		leg.Steps = append(leg.Steps, fromStep(s))
	}
	return leg
}

func fromStep(s *maps.Step) models.Step {
	step := models.Step{
		TravelMode:   models.TravelMode(s.TravelMode),
		Duration:     s.Duration,
		DistanceM:    s.Distance.Meters,
		Instructions: s.HTMLInstructions,
	}

	if td := s.TransitDetails; td != nil {
		step.LineName = td.Line.Name
		step.VehicleName = td.Line.Vehicle.Name
		step.DepartureStop = td.DepartureStop.Name
		step.ArrivalStop = td.ArrivalStop.Name
	}
	return step
}
