package analyzer

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/chrisdamba/commutetracker/internal/mapsapi"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Geocode(ctx context.Context, address string) (models.Location, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(models.Location), args.Error(1)
}

func (m *mockProvider) NearbyStations(ctx context.Context, center models.Location, radiusM int, keyword string) ([]models.Station, error) {
	args := m.Called(ctx, center, radiusM, keyword)
	res, _ := args.Get(0).([]models.Station)
	return res, args.Error(1)
}

func (m *mockProvider) Directions(ctx context.Context, q mapsapi.DirectionsQuery) ([]models.Route, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).([]models.Route)
	return res, args.Error(1)
}

func (m *mockProvider) DistanceMatrix(ctx context.Context, origin, destination string, departure time.Time) (models.MatrixElement, error) {
	args := m.Called(ctx, origin, destination, departure)
	return args.Get(0).(models.MatrixElement), args.Error(1)
}

var newYork, _ = time.LoadLocation("America/New_York")

func testConfig() *models.Config {
	return &models.Config{
		GoogleMapsKey:       "k",
		FinalDestination:    "Penn Medicine",
		MorningArrival:      "09:00",
		EveningArrival:      "17:30",
		Timezone:            "America/New_York",
		StationSearchRadius: 3000,
		StationKeyword:      "train station",
		AllowedLines:        models.DefaultAllowedLines,
		SkipWeekends:        true,
		OutputFormat:        "csv",
	}
}

// sunday noon, so the next travel day is Monday 2024-03-04
func fixedClock() time.Time {
	return time.Date(2024, 3, 3, 12, 0, 0, 0, newYork)
}

func at(h, m int) time.Time {
	return time.Date(2024, 3, 4, h, m, 0, 0, newYork)
}

type transitLeg struct {
	line string
	mins int
	stop string
}

func railRoute(dep, arr time.Time, walkMins, walkM int, legs ...transitLeg) models.Route {
	steps := []models.Step{{TravelMode: models.TravelModeWalking, Duration: time.Minute, DistanceM: 80}}
	for _, l := range legs {
		steps = append(steps, models.Step{
			TravelMode:  models.TravelModeTransit,
			Duration:    time.Duration(l.mins) * time.Minute,
			LineName:    l.line,
			VehicleName: "Train",
			ArrivalStop: l.stop,
		})
	}
	steps = append(steps, models.Step{
		TravelMode: models.TravelModeWalking,
		Duration:   time.Duration(walkMins) * time.Minute,
		DistanceM:  walkM,
	})

	return models.Route{Legs: []models.Leg{{
		DepartureTime: dep,
		ArrivalTime:   arr,
		Steps:         steps,
	}}}
}

func driveRoute(mins int, meters int) models.Route {
	return models.Route{Legs: []models.Leg{{
		Duration:          time.Duration(mins-1) * time.Minute,
		DurationInTraffic: time.Duration(mins) * time.Minute,
		DistanceM:         meters,
	}}}
}

func isTransitFrom(origin string) interface{} {
	return mock.MatchedBy(func(q mapsapi.DirectionsQuery) bool {
		return q.Mode == models.TravelModeTransit && q.Origin == origin
	})
}

func isTransitTo(dest string) interface{} {
	return mock.MatchedBy(func(q mapsapi.DirectionsQuery) bool {
		return q.Mode == models.TravelModeTransit && q.Destination == dest
	})
}

func isDrive(origin, dest string) interface{} {
	return mock.MatchedBy(func(q mapsapi.DirectionsQuery) bool {
		return q.Mode == models.TravelModeDriving && q.Origin == origin && q.Destination == dest
	})
}
