package analyzer

import (
	"io"
	"time"

	"github.com/chrisdamba/commutetracker/internal/mapsapi"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
)

// Analyzer turns mapping service answers into commute rows. It is not safe for concurrent use.
type Analyzer struct {
	maps     mapsapi.Provider
	geocoder mapsapi.Geocoder
	cfg      *models.Config
	runID    string
	now      func() time.Time
}

type Option func(*Analyzer)

// WithGeocoder replaces the provider's own geocoder, typically with a cached one.
func WithGeocoder(g mapsapi.Geocoder) Option {
	return func(a *Analyzer) { a.geocoder = g }
}

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func WithRunID(id string) Option {
	return func(a *Analyzer) { a.runID = id }
}

func New(p mapsapi.Provider, cfg *models.Config, opts ...Option) *Analyzer {
	a := &Analyzer{
		maps:     p,
		geocoder: p,
		cfg:      cfg,
		runID:    cuid.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) RunID() string {
	return a.runID
}

func newProgress(w io.Writer, total int, desc string) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
	)
}
