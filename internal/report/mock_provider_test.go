package report

import (
	"context"
	"time"

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
