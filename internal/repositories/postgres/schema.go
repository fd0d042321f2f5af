package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS geocode_cache (
    address    TEXT PRIMARY KEY,
    lat        DOUBLE PRECISION NOT NULL,
    lng        DOUBLE PRECISION NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS drive_commutes (
    id                   BIGSERIAL PRIMARY KEY,
    run_id               TEXT NOT NULL,
    origin               TEXT NOT NULL,
    destination          TEXT NOT NULL,
    commute_time         TEXT NOT NULL,
    drive_time_mins      DOUBLE PRECISION,
    drive_distance_miles DOUBLE PRECISION,
    observed_at          TEXT NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transit_analyses (
    id                   BIGSERIAL PRIMARY KEY,
    run_id               TEXT NOT NULL,
    home_address         TEXT NOT NULL,
    station_name         TEXT NOT NULL,
    station_address      TEXT NOT NULL,
    destination_station  TEXT NOT NULL,
    drive_time_mins      DOUBLE PRECISION NOT NULL,
    drive_distance_miles DOUBLE PRECISION NOT NULL,
    transit_time_mins    DOUBLE PRECISION NOT NULL,
    walk_time_mins       DOUBLE PRECISION NOT NULL,
    walk_distance_miles  DOUBLE PRECISION NOT NULL,
    total_time_mins      DOUBLE PRECISION NOT NULL,
    transfers            BIGINT NOT NULL,
    arrival_time         TEXT NOT NULL,
    departure_time       TEXT NOT NULL,
    commute_type         TEXT NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- failed drive lookups are stored as NULL
ALTER TABLE drive_commutes ALTER COLUMN drive_time_mins DROP NOT NULL;
ALTER TABLE drive_commutes ALTER COLUMN drive_distance_miles DROP NOT NULL;

CREATE INDEX IF NOT EXISTS transit_analyses_run_id_idx ON transit_analyses (run_id);
`

// Connect opens a pool and makes sure the tables exist.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: create schema: %w", err)
	}
	return nil
}

// Option configures a repository.
type Option func(*queryTimeout)

// WithQueryTimeout bounds every repository call by d.
func WithQueryTimeout(d time.Duration) Option {
	return func(t *queryTimeout) { *t = queryTimeout(d) }
}

type queryTimeout time.Duration

func newQueryTimeout(opts []Option) queryTimeout {
	var t queryTimeout
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func (t queryTimeout) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if t <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(t))
}
