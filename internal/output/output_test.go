package output

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func sampleRows() []*models.TransitAnalysis {
	return []*models.TransitAnalysis{
		{HomeAddress: "1 A St", StationName: "Ardmore", TotalTimeMins: 43, Transfers: 0, CommuteType: models.CommuteTypeMorning, RunID: "r"},
		{HomeAddress: "1 A St", StationName: "Ardmore", TotalTimeMins: 40.5, Transfers: 1, CommuteType: models.CommuteTypeEvening, RunID: "r"},
	}
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "out/transit_analysis.csv", PathFor("out/transit_analysis.csv", "csv"))
	assert.Equal(t, "out/transit_analysis.parquet", PathFor("out/transit_analysis.csv", "parquet"))
	assert.Equal(t, "commute_times.jsonl", PathFor("commute_times.csv", "json"))
	assert.Equal(t, "report.csv", PathFor("report", "csv"))
}

func TestCSVOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transit_analysis.csv")

	out, err := NewCSVOutput(path)
	require.NoError(t, err)
	assert.Zero(t, WriteAll(out, models.TopicTransitAnalyses, sampleRows()))
	require.NoError(t, out.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, models.TransitAnalysisHeader, records[0])
	assert.Equal(t, "43.0", records[1][9])
	assert.Equal(t, "Evening", records[2][13])
}

func TestCSVOutput_DriveLookupFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commute_times.csv")

	out, err := NewCSVOutput(path)
	require.NoError(t, err)
	WriteAll(out, models.TopicDriveCommutes, []*models.DriveCommute{
		{Origin: "1 A St", Destination: "City Hall", CommuteTime: "34 mins", DriveTimeMins: models.Float64(34), DriveDistanceMiles: models.Float64(12.4), RunID: "r"},
		{Origin: "2 B St", Destination: "City Hall", RunID: "r"},
	})
	require.NoError(t, out.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"34 mins", "34.0", "12.4"}, records[1][2:5])
	assert.Equal(t, []string{"", "", ""}, records[2][2:5])
}

func TestParquetOutput_DriveLookupFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commute_times.parquet")

	out := NewParquetOutput(path)
	assert.Zero(t, WriteAll(out, models.TopicDriveCommutes, []*models.DriveCommute{
		{Origin: "1 A St", DriveTimeMins: models.Float64(34), DriveDistanceMiles: models.Float64(12.4)},
		{Origin: "2 B St"},
	}))
	require.NoError(t, out.Close())

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(models.DriveCommute), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	rows := make([]models.DriveCommute, 2)
	require.NoError(t, pr.Read(&rows))
	require.NotNil(t, rows[0].DriveTimeMins)
	assert.Equal(t, 34.0, *rows[0].DriveTimeMins)
	assert.Nil(t, rows[1].DriveTimeMins)
	assert.Nil(t, rows[1].DriveDistanceMiles)
}

func TestJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")

	out, err := NewJSONOutput(path)
	require.NoError(t, err)
	WriteAll(out, models.TopicTransitAnalyses, sampleRows())
	require.NoError(t, out.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "Morning", lines[0]["commute_type"])
	assert.Equal(t, 40.5, lines[1]["total_time_mins"])
}

func TestParquetOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.parquet")

	out := NewParquetOutput(path)
	assert.Zero(t, WriteAll(out, models.TopicTransitAnalyses, sampleRows()))
	require.NoError(t, out.Close())

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(models.TransitAnalysis), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.Equal(t, int64(2), pr.GetNumRows())
	rows := make([]models.TransitAnalysis, 2)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, "Ardmore", rows[0].StationName)
	assert.Equal(t, int64(1), rows[1].Transfers)
}

func TestParquetOutput_NoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	assert.NoError(t, NewParquetOutput(path).Close())
	assert.NoFileExists(t, path)
}

func TestKafkaOutput(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var m map[string]any
		if err := json.Unmarshal(val, &m); err != nil {
			return err
		}
		if m["home_address"] != "1 A St" {
			return errors.New("unexpected home_address")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	out := NewKafkaOutputFromProducer(producer)
	rows := sampleRows()

	assert.NoError(t, out.WriteRecord(models.TopicTransitAnalyses, rows[0]))
	assert.ErrorIs(t, out.WriteRecord(models.TopicTransitAnalyses, rows[1]), sarama.ErrOutOfBrokers)

	require.NoError(t, out.Close())
	assert.Error(t, out.WriteRecord(models.TopicTransitAnalyses, rows[0]))
}

type failingOutput struct{ closed bool }

func (f *failingOutput) WriteRecord(string, models.Record) error { return errors.New("nope") }
func (f *failingOutput) Close() error {
	f.closed = true
	return nil
}

func TestMultiOutput(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleOutput(&buf)
	bad := &failingOutput{}

	m := MultiOutput{console, bad}
	assert.Equal(t, 2, WriteAll(m, models.TopicTransitAnalyses, sampleRows()))
	require.NoError(t, m.Close())

	assert.True(t, bad.closed)
	assert.Contains(t, buf.String(), "home_address")
	assert.Contains(t, buf.String(), "Ardmore")
}

func TestDetermineOutputDestination(t *testing.T) {
	dir := t.TempDir()
	cfg := &models.Config{OutputFormat: "parquet"}

	dest, path, err := DetermineOutputDestination(cfg, filepath.Join(dir, "transit_analysis.csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transit_analysis.parquet"), path)
	assert.IsType(t, &ParquetOutput{}, dest)
	require.NoError(t, dest.Close())

	cfg.OutputFormat = "xml"
	_, _, err = DetermineOutputDestination(cfg, filepath.Join(dir, "x.csv"))
	assert.Error(t, err)
}
