package mapsapi

import (
	"context"
	"errors"
	"time"

	"github.com/chrisdamba/commutetracker/internal/models"
)

var ErrNoResults = errors.New("no results")

// DirectionsQuery describes one directions lookup. Zero times are omitted from the request.
type DirectionsQuery struct {
	Origin        string
	Destination   string
	Mode          models.TravelMode
	DepartureTime time.Time
	ArrivalTime   time.Time
	Alternatives  bool
	RailOnly      bool
	BestGuess     bool
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Location, error)
}

// Provider is everything the analysis needs from the mapping service.
type Provider interface {
	Geocoder
	NearbyStations(ctx context.Context, center models.Location, radiusM int, keyword string) ([]models.Station, error)
	Directions(ctx context.Context, q DirectionsQuery) ([]models.Route, error)
	DistanceMatrix(ctx context.Context, origin, destination string, departure time.Time) (models.MatrixElement, error)
}
