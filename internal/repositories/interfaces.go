package repositories

import (
	"context"

	"github.com/chrisdamba/commutetracker/internal/models"
)

type GeocodeRepository interface {
	GetMany(ctx context.Context, addresses []string) (map[string]models.Location, error)
	PutMany(ctx context.Context, results map[string]models.Location) error
}

type CommuteRepository interface {
	SaveDriveCommutes(ctx context.Context, rows []*models.DriveCommute) error
	SaveTransitAnalyses(ctx context.Context, rows []*models.TransitAnalysis) error
	ListTransitAnalyses(ctx context.Context, runID string) ([]*models.TransitAnalysis, error)
}
