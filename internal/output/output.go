package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

type OutputDestination interface {
	WriteRecord(topic string, rec models.Record) error
	Close() error
}

// PathFor swaps the extension of path to match format, e.g. transit_analysis.csv -> transit_analysis.parquet.
func PathFor(path, format string) string {
	ext := "." + format
	if format == "json" {
		ext = ".jsonl"
	}
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// NewFileOutput opens the local file destination for format at path.
func NewFileOutput(format, path string) (OutputDestination, error) {
	switch format {
	case "csv":
		return NewCSVOutput(path)
	case "json":
		return NewJSONOutput(path)
	case "parquet":
		return NewParquetOutput(path), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetermineOutputDestination builds the file destination and, when Kafka is enabled,
// fans every record out to the broker as well. It returns the file path actually used.
func DetermineOutputDestination(cfg *models.Config, path string) (OutputDestination, string, error) {
	path = PathFor(path, cfg.OutputFormat)

	file, err := NewFileOutput(cfg.OutputFormat, path)
	if err != nil {
		return nil, "", err
	}

	if !cfg.KafkaEnabled {
		return file, path, nil
	}

	kafka, err := NewKafkaOutput(cfg.KafkaBrokerList)
	if err != nil {
		_ = file.Close()
		return nil, "", err
	}
	return MultiOutput{file, kafka}, path, nil
}

// MultiOutput writes every record to each destination in turn.
type MultiOutput []OutputDestination

func (m MultiOutput) WriteRecord(topic string, rec models.Record) error {
	var errs []error
	for _, d := range m {
		if err := d.WriteRecord(topic, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiOutput) Close() error {
	var errs []error
	for _, d := range m {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteAll writes recs to dest under topic, logging and counting failed records.
func WriteAll[T models.Record](dest OutputDestination, topic string, recs []T) int {
	failed := 0
	for _, r := range recs {
		if err := dest.WriteRecord(topic, r); err != nil {
			failed++
			log.Error().Err(err).Str("topic", topic).Str("key", r.Key()).Msg("failed to write record")
		}
	}
	return failed
}
