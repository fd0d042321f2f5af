package cmd

import (
	"context"
	"fmt"

	"github.com/chrisdamba/commutetracker/internal/cache"
	"github.com/chrisdamba/commutetracker/internal/cloudwriter"
	"github.com/chrisdamba/commutetracker/internal/mapsapi"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/chrisdamba/commutetracker/internal/repositories"
	"github.com/chrisdamba/commutetracker/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// newProvider builds the mapping client; tests point it at a local server.
var newProvider = func(cfg *models.Config) (mapsapi.Provider, error) {
	return mapsapi.NewGoogleProvider(cfg.GoogleMapsKey, mapsapi.WithTimeout(cfg.RequestTimeout))
}

// app holds the collaborators shared by the API-backed commands.
type app struct {
	provider mapsapi.Provider
	geocoder mapsapi.Geocoder
	pool     *pgxpool.Pool
	commutes repositories.CommuteRepository
	uploads  cloudwriter.CloudWriterFactory
}

func newApp(ctx context.Context) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	uploads, err := cloudwriter.NewFactory(ctx, cfg.CloudStorage)
	if err != nil {
		return nil, fmt.Errorf("cloud storage: %w", err)
	}

	a := &app{provider: provider, uploads: uploads}

	var store repositories.GeocodeRepository
	if cfg.DatabaseURL != "" {
		pool, err := connect(ctx)
		if err != nil {
			log.Error().Err(err).Msg("persistence disabled")
		} else {
			a.pool = pool
			a.commutes = postgres.NewCommuteRepository(pool, postgres.WithQueryTimeout(cfg.RequestTimeout))
			store = postgres.NewGeocodeRepository(pool, postgres.WithQueryTimeout(cfg.RequestTimeout))
		}
	}

	a.geocoder = cache.NewCachedGeocoder(provider, store, cache.DefaultSize, cache.DefaultTTL)
	return a, nil
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}
	return postgres.Connect(ctx, cfg.DatabaseURL)
}

// upload sends the run's files to cloud storage when it is configured.
func (a *app) upload(ctx context.Context, runID string, files ...string) {
	if a.uploads == nil {
		return
	}
	if failed := cloudwriter.UploadRun(ctx, a.uploads, cfg.CloudStorage, cfg.RequestTimeout, runID, files...); failed > 0 {
		log.Warn().Int("failed", failed).Msg("some files were not uploaded")
	}
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
