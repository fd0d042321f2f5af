package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chrisdamba/commutetracker/internal/models"
)

// ReportColumns are shown in the report table, in this order, when the input has them.
var ReportColumns = []string{
	"home_address",
	"station_name",
	"destination_station",
	"drive_time_mins",
	"drive_distance_miles",
	"transit_time_mins",
	"walk_time_mins",
	"walk_distance_miles",
	"total_time_mins",
	"transfers",
}

// Table is a transit analysis CSV read back with its own header.
type Table struct {
	Header []string
	Rows   []Row
}

type Row map[string]string

func (r Row) Get(col string) string {
	return r[col]
}

// Float parses a numeric column. ok is false for missing or unparseable values.
func (r Row) Float(col string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r[col]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (t *Table) Has(col string) bool {
	for _, h := range t.Header {
		if h == col {
			return true
		}
	}
	return false
}

// Columns returns the report columns present in the table.
func (t *Table) Columns() []string {
	var out []string
	for _, c := range ReportColumns {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// TableFromAnalyses builds a table from stored rows, formatted exactly as the CSV output.
func TableFromAnalyses(rows []*models.TransitAnalysis) *Table {
	t := &Table{Header: append([]string(nil), models.TransitAnalysisHeader...)}
	for _, r := range rows {
		vals := r.Values()
		row := make(Row, len(vals))
		for i, h := range t.Header {
			row[h] = vals[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load table: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadTable(f)
}

func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("load table: empty file")
		}
		return nil, fmt.Errorf("load table: read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load table: %w", err)
		}

		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
