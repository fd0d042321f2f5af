package report

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/chrisdamba/commutetracker/internal/mapsapi"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// Result lists the files a visualize run produced. PDFPath is empty when PDF rendering failed or was skipped.
type Result struct {
	MapPath    string
	ReportPath string
	PDFPath    string
}

func (r Result) Files() []string {
	files := []string{r.MapPath, r.ReportPath}
	if r.PDFPath != "" {
		files = append(files, r.PDFPath)
	}
	return files
}

type Visualizer struct {
	builder   *MapBuilder
	renderPDF PDFRenderer
	open      func(string) error
	now       func() time.Time
}

type VisualizerOption func(*Visualizer)

// WithPDFRenderer overrides the renderer; nil disables PDF output.
func WithPDFRenderer(r PDFRenderer) VisualizerOption {
	return func(v *Visualizer) { v.renderPDF = r }
}

func WithOpener(open func(string) error) VisualizerOption {
	return func(v *Visualizer) { v.open = open }
}

func WithNow(now func() time.Time) VisualizerOption {
	return func(v *Visualizer) { v.now = now }
}

func NewVisualizer(p mapsapi.Provider, g mapsapi.Geocoder, cfg *models.Config, opts ...VisualizerOption) *Visualizer {
	v := &Visualizer{
		builder:   NewMapBuilder(p, g, cfg),
		renderPDF: WKHTMLToPDF,
		open:      browser.OpenFile,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// OutputPaths derives the map page, report and PDF paths from the report path.
func OutputPaths(output string) Result {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return Result{
		MapPath:    base + "_map.html",
		ReportPath: base + ".html",
		PDFPath:    base + ".pdf",
	}
}

// Run reads the analysis CSV at input and writes the map page, HTML report and PDF next to output.
func (v *Visualizer) Run(ctx context.Context, input, output string, openReport bool) (Result, error) {
	t, err := LoadTable(input)
	if err != nil {
		return Result{}, err
	}
	return v.Render(ctx, t, output, openReport)
}

// Render writes the map page, HTML report and PDF for an already loaded table.
func (v *Visualizer) Render(ctx context.Context, t *Table, output string, openReport bool) (Result, error) {
	res := OutputPaths(output)

	data := v.builder.Build(ctx, t)
	page, err := RenderMapPage(data)
	if err != nil {
		return Result{}, err
	}
	if err := writeFile(res.MapPath, page); err != nil {
		return Result{}, err
	}
	log.Info().Str("path", res.MapPath).Msg("map saved")

	html, err := RenderReport(t, &data, v.now())
	if err != nil {
		return Result{}, err
	}
	if err := writeFile(res.ReportPath, html); err != nil {
		return Result{}, err
	}
	log.Info().Str("path", res.ReportPath).Msg("HTML report saved")

	if v.renderPDF == nil {
		res.PDFPath = ""
	} else if err := v.renderPDF(html, res.PDFPath); err != nil {
		log.Error().Err(err).Str("html", res.ReportPath).Msg("error creating PDF, HTML report still available")
		res.PDFPath = ""
	} else {
		log.Info().Str("path", res.PDFPath).Msg("PDF report saved")
	}

	if openReport {
		abs, err := filepath.Abs(res.ReportPath)
		if err == nil {
			err = v.open(abs)
		}
		if err != nil {
			log.Warn().Err(err).Msg("could not open report in browser")
		}
	}

	return res, nil
}
