package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/chrisdamba/commutetracker/internal/platform/obs"
	"github.com/chrisdamba/commutetracker/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommuteRepository struct {
	pool    *pgxpool.Pool
	timeout queryTimeout
}

var _ repositories.CommuteRepository = (*CommuteRepository)(nil)

func NewCommuteRepository(pool *pgxpool.Pool, opts ...Option) *CommuteRepository {
	return &CommuteRepository{pool: pool, timeout: newQueryTimeout(opts)}
}

func (r *CommuteRepository) SaveDriveCommutes(ctx context.Context, rows []*models.DriveCommute) (err error) {
	defer obs.Time(ctx, "commutes.SaveDriveCommutes")(&err)
	ctx, cancel := r.timeout.bound(ctx)
	defer cancel()

	_, err = r.pool.CopyFrom(ctx,
		pgx.Identifier{"drive_commutes"},
		[]string{"run_id", "origin", "destination", "commute_time", "drive_time_mins", "drive_distance_miles", "observed_at"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			d := rows[i]
			return []any{d.RunID, d.Origin, d.Destination, d.CommuteTime, d.DriveTimeMins, d.DriveDistanceMiles, d.Timestamp}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("save drive commutes: %w", err)
	}
	return nil
}

var transitColumns = []string{
	"run_id", "home_address", "station_name", "station_address", "destination_station",
	"drive_time_mins", "drive_distance_miles", "transit_time_mins", "walk_time_mins",
	"walk_distance_miles", "total_time_mins", "transfers", "arrival_time",
	"departure_time", "commute_type",
}

func (r *CommuteRepository) SaveTransitAnalyses(ctx context.Context, rows []*models.TransitAnalysis) (err error) {
	defer obs.Time(ctx, "commutes.SaveTransitAnalyses")(&err)
	ctx, cancel := r.timeout.bound(ctx)
	defer cancel()

	_, err = r.pool.CopyFrom(ctx,
		pgx.Identifier{"transit_analyses"},
		transitColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			t := rows[i]
			return []any{
				t.RunID, t.HomeAddress, t.StationName, t.StationAddress, t.DestinationStation,
				t.DriveTimeMins, t.DriveDistanceMiles, t.TransitTimeMins, t.WalkTimeMins,
				t.WalkDistanceMiles, t.TotalTimeMins, t.Transfers, t.ArrivalTime,
				t.DepartureTime, t.CommuteType,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("save transit analyses: %w", err)
	}
	return nil
}

// ListTransitAnalyses returns the rows of one run in output order.
func (r *CommuteRepository) ListTransitAnalyses(ctx context.Context, runID string) (_ []*models.TransitAnalysis, err error) {
	defer obs.Time(ctx, "commutes.ListTransitAnalyses")(&err)
	ctx, cancel := r.timeout.bound(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
        SELECT run_id, home_address, station_name, station_address, destination_station,
               drive_time_mins, drive_distance_miles, transit_time_mins, walk_time_mins,
               walk_distance_miles, total_time_mins, transfers, arrival_time,
               departure_time, commute_type
        FROM transit_analyses
        WHERE run_id = $1
        ORDER BY home_address, CASE commute_type WHEN 'Morning' THEN 0 ELSE 1 END, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list transit analyses: query: %w", err)
	}
	defer rows.Close()

	var out []*models.TransitAnalysis
	for rows.Next() {
		t := &models.TransitAnalysis{}
		if err := rows.Scan(
			&t.RunID, &t.HomeAddress, &t.StationName, &t.StationAddress, &t.DestinationStation,
			&t.DriveTimeMins, &t.DriveDistanceMiles, &t.TransitTimeMins, &t.WalkTimeMins,
			&t.WalkDistanceMiles, &t.TotalTimeMins, &t.Transfers, &t.ArrivalTime,
			&t.DepartureTime, &t.CommuteType,
		); err != nil {
			return nil, fmt.Errorf("list transit analyses: scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transit analyses: rows: %w", err)
	}
	return out, nil
}
