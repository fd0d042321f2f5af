package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID tags ctx so that timings logged under it carry the run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// Time logs the duration of an operation at DEBUG. Use as: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		ev := log.Debug().
			Str("run_id", runID).
			Str("op", name).
			Int64("dur_ms", time.Since(start).Milliseconds())
		if errp != nil && *errp != nil {
			ev = ev.Err(*errp)
		}
		ev.Msg("call finished")
	}
}
