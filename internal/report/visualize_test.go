package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const analysisCSV = `home_address,station_name,station_address,destination_station,drive_time_mins,drive_distance_miles,transit_time_mins,walk_time_mins,walk_distance_miles,total_time_mins,transfers,arrival_time,departure_time,commute_type,run_id
1 A St,Ardmore,"Ardmore, PA",Penn Medicine Station,8.0,2.0,25.0,10.0,0.50,43.0,0,08:50 AM,Leave home at 08:02 AM,Morning,r1
1 A St,Ardmore,"Ardmore, PA",Ardmore,9.0,2.0,22.0,2.0,0.09,33.0,0,05:29 PM,Leave work at 05:02 PM,Evening,r1
`

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, Result{
		MapPath:    "out/commute_analysis_map.html",
		ReportPath: "out/commute_analysis.html",
		PDFPath:    "out/commute_analysis.pdf",
	}, OutputPaths("out/commute_analysis.html"))
}

func TestRenderReport(t *testing.T) {
	tbl := testTable()
	html, err := RenderReport(tbl, nil, time.Date(2024, 3, 4, 9, 5, 0, 0, time.UTC))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Generated on 2024-03-04 09:05")
	assert.Contains(t, out, "Number of routes analyzed: 2")
	assert.Contains(t, out, "Average total commute time: 49.0 minutes")
	assert.Contains(t, out, "Shortest commute: 43.0 minutes")
	assert.Contains(t, out, "Longest commute: 55.0 minutes")
	assert.Contains(t, out, "<th>destination_station</th>")
	assert.NotContains(t, out, "<th>station_address</th>")
	assert.NotContains(t, out, "leaflet.js")
}

func TestRenderMapPage(t *testing.T) {
	page, err := RenderMapPage(MapData{CenterLat: 39.9526, CenterLng: -75.1652, Zoom: 11, Markers: []Marker{{Lat: 1, Lng: 2, Color: "red", Popup: []string{"<b>x</b>"}}}})
	require.NoError(t, err)

	out := string(page)
	assert.Contains(t, out, "leaflet.js")
	assert.Contains(t, out, `"center_lat":39.9526`)
	assert.NotContains(t, out, "<b>x</b>")
}

func TestVisualizer_Run(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "transit_analysis.csv")
	require.NoError(t, os.WriteFile(input, []byte(analysisCSV), 0o644))

	p := new(mockProvider)
	p.On("Geocode", mock.Anything, mock.Anything).Return(models.Location{Lat: 40, Lng: -75.2}, nil)
	p.On("Directions", mock.Anything, mock.Anything).Return([]models.Route{}, nil)

	var pdfHTML []byte
	var opened string
	v := NewVisualizer(p, nil, testConfig(),
		WithPDFRenderer(func(html []byte, out string) error {
			pdfHTML = html
			return os.WriteFile(out, []byte("%PDF"), 0o644)
		}),
		WithOpener(func(path string) error {
			opened = path
			return nil
		}),
		WithNow(func() time.Time { return time.Date(2024, 3, 4, 9, 5, 0, 0, time.UTC) }),
	)

	res, err := v.Run(context.Background(), input, filepath.Join(dir, "commute_analysis.html"), true)
	require.NoError(t, err)

	assert.FileExists(t, res.MapPath)
	assert.FileExists(t, res.ReportPath)
	assert.FileExists(t, res.PDFPath)
	assert.Len(t, res.Files(), 3)
	assert.Equal(t, res.ReportPath, opened)

	report, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, report, pdfHTML)
	assert.Contains(t, string(report), "Average total commute time: 38.0 minutes")
}

func TestVisualizer_PDFFailureKeepsHTML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "transit_analysis.csv")
	require.NoError(t, os.WriteFile(input, []byte(analysisCSV), 0o644))

	p := new(mockProvider)
	p.On("Geocode", mock.Anything, mock.Anything).Return(models.Location{}, errors.New("quota"))

	v := NewVisualizer(p, nil, testConfig(), WithPDFRenderer(func([]byte, string) error {
		return errors.New("wkhtmltopdf not found")
	}))

	res, err := v.Run(context.Background(), input, filepath.Join(dir, "report.html"), false)
	require.NoError(t, err)

	assert.Empty(t, res.PDFPath)
	assert.FileExists(t, res.ReportPath)
	assert.Len(t, res.Files(), 2)
}

func TestVisualizer_MissingInput(t *testing.T) {
	v := NewVisualizer(new(mockProvider), nil, testConfig(), WithPDFRenderer(nil))
	_, err := v.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "x.html", false)
	assert.Error(t, err)
}

func TestTableFromAnalyses(t *testing.T) {
	tbl := TableFromAnalyses([]*models.TransitAnalysis{
		{HomeAddress: "1 A St", StationName: "Ardmore", TotalTimeMins: 43, WalkDistanceMiles: 0.5, CommuteType: models.CommuteTypeMorning, RunID: "r1"},
		{HomeAddress: "1 A St", StationName: "Ardmore", TotalTimeMins: 33, Transfers: 1, CommuteType: models.CommuteTypeEvening, RunID: "r1"},
	})

	assert.Equal(t, models.TransitAnalysisHeader, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "43.0", tbl.Rows[0].Get("total_time_mins"))
	assert.Equal(t, "0.50", tbl.Rows[0].Get("walk_distance_miles"))
	assert.Equal(t, "1", tbl.Rows[1].Get("transfers"))

	sum := SummarizeTable(tbl)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 38.0, sum.Avg)
}

func TestVisualizer_RenderStoredRows(t *testing.T) {
	dir := t.TempDir()

	p := new(mockProvider)
	p.On("Geocode", mock.Anything, mock.Anything).Return(models.Location{}, errors.New("quota"))

	v := NewVisualizer(p, nil, testConfig(), WithPDFRenderer(nil))
	tbl := TableFromAnalyses([]*models.TransitAnalysis{
		{HomeAddress: "1 A St", StationName: "Ardmore", TotalTimeMins: 43, CommuteType: models.CommuteTypeMorning, RunID: "r1"},
	})

	res, err := v.Render(context.Background(), tbl, filepath.Join(dir, "stored.html"), false)
	require.NoError(t, err)
	assert.Empty(t, res.PDFPath)

	report, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Number of routes analyzed: 1")
}
