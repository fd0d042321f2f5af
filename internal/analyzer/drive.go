package analyzer

import (
	"context"
	"io"
	"time"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

// CommuteTime asks for the driving time with traffic between origin and destination.
// The bool is false when the service had no usable answer; failures are logged.
func (a *Analyzer) CommuteTime(ctx context.Context, origin, destination string, departure time.Time) (models.MatrixElement, bool) {
	el, err := a.maps.DistanceMatrix(ctx, origin, destination, departure)
	if err != nil {
		log.Error().Err(err).Str("origin", origin).Str("destination", destination).Msg("error getting commute time")
		return models.MatrixElement{}, false
	}
	if el.Status != "OK" {
		log.Warn().Str("status", el.Status).Str("origin", origin).Str("destination", destination).Msg("no driving result")
		return models.MatrixElement{}, false
	}
	return el, true
}

// DriveCommute builds the output row for one address. Missing results leave the timing columns empty.
func (a *Analyzer) DriveCommute(ctx context.Context, addr models.Address) *models.DriveCommute {
	dest := addr.Destination
	if dest == "" {
		dest = a.cfg.FinalDestination
	}

	now := a.now()
	row := &models.DriveCommute{
		Origin:      addr.Address,
		Destination: dest,
		Timestamp:   now.Format(time.RFC3339),
		RunID:       a.runID,
	}

	el, ok := a.CommuteTime(ctx, addr.Address, dest, time.Time{})
	if !ok {
		return row
	}

	d := el.TrafficDuration()
	row.CommuteTime = models.HumanDuration(d)
	row.DriveTimeMins = models.Float64(models.Round(d.Minutes(), 1))
	row.DriveDistanceMiles = models.Float64(models.Round(models.MetersToMiles(el.DistanceM), 1))

	log.Info().Str("origin", row.Origin).Str("commute_time", row.CommuteTime).Msg("drive commute")
	return row
}

// RunDrive produces one row per address, in input order. It stops early when ctx is cancelled.
func (a *Analyzer) RunDrive(ctx context.Context, addrs []models.Address, progress io.Writer) []*models.DriveCommute {
	bar := newProgress(progress, len(addrs), "Checking drive times")

	rows := make([]*models.DriveCommute, 0, len(addrs))
	for _, addr := range addrs {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("drive run interrupted")
			break
		}
		rows = append(rows, a.DriveCommute(ctx, addr))
		_ = bar.Add(1)
	}
	return rows
}
