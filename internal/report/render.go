package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type reportView struct {
	Date    string
	Summary Summary
	Map     *MapData
	Columns []string
	Rows    [][]string
}

// RenderMapPage renders a standalone Leaflet page.
func RenderMapPage(data MapData) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "map_page", data); err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderReport renders the summary, the optional map and the detail table.
func RenderReport(t *Table, data *MapData, generated time.Time) ([]byte, error) {
	view := reportView{
		Date:    generated.Format("2006-01-02 15:04"),
		Summary: SummarizeTable(t),
		Map:     data,
		Columns: t.Columns(),
	}
	for _, r := range t.Rows {
		cells := make([]string, len(view.Columns))
		for i, c := range view.Columns {
			cells[i] = r.Get(c)
		}
		view.Rows = append(view.Rows, cells)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "report", view); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
