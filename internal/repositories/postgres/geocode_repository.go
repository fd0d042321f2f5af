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

// GeocodeRepository persists address -> location lookups across runs.
type GeocodeRepository struct {
	pool    *pgxpool.Pool
	timeout queryTimeout
}

var _ repositories.GeocodeRepository = (*GeocodeRepository)(nil)

func NewGeocodeRepository(pool *pgxpool.Pool, opts ...Option) *GeocodeRepository {
	return &GeocodeRepository{pool: pool, timeout: newQueryTimeout(opts)}
}

func (r *GeocodeRepository) GetMany(ctx context.Context, addresses []string) (_ map[string]models.Location, err error) {
	defer obs.Time(ctx, "geocode.store.GetMany")(&err)
	ctx, cancel := r.timeout.bound(ctx)
	defer cancel()

	out := make(map[string]models.Location, len(addresses))
	if len(addresses) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
        SELECT address, lat, lng
        FROM geocode_cache
        WHERE address = ANY($1::text[])`, addresses)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr string
		var loc models.Location
		if err := rows.Scan(&addr, &loc.Lat, &loc.Lng); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan: %w", err)
		}
		out[addr] = loc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: rows: %w", err)
	}

	return out, nil
}

func (r *GeocodeRepository) PutMany(ctx context.Context, results map[string]models.Location) (err error) {
	defer obs.Time(ctx, "geocode.store.PutMany")(&err)
	ctx, cancel := r.timeout.bound(ctx)
	defer cancel()

	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for addr, loc := range results {
		batch.Queue(`
            INSERT INTO geocode_cache (address, lat, lng, updated_at)
            VALUES ($1, $2, $3, now())
            ON CONFLICT (address) DO UPDATE
            SET lat = EXCLUDED.lat, lng = EXCLUDED.lng, updated_at = now()`,
			addr, loc.Lat, loc.Lng)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("put geocode cache: %w", err)
	}
	return nil
}
