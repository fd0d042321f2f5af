package output

import (
	"fmt"
	"reflect"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetOutput derives its schema from the parquet tags of the first record written.
type ParquetOutput struct {
	path   string
	file   source.ParquetFile
	writer *writer.ParquetWriter
}

func NewParquetOutput(path string) *ParquetOutput {
	return &ParquetOutput{path: path}
}

func (p *ParquetOutput) createNewWriter(rec models.Record) error {
	fw, err := local.NewLocalFileWriter(p.path)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, rec, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.file = fw
	p.writer = pw
	return nil
}

func (p *ParquetOutput) WriteRecord(topic string, rec models.Record) error {
	if p.writer == nil {
		if err := p.createNewWriter(rec); err != nil {
			return err
		}
	}

	// the marshaller expects struct values, not pointers
	if err := p.writer.Write(reflect.Indirect(reflect.ValueOf(rec)).Interface()); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (p *ParquetOutput) Close() error {
	if p.writer == nil {
		log.Warn().Str("path", p.path).Msg("no records written, parquet file not created")
		return nil
	}

	var lastErr error
	if err := p.writer.WriteStop(); err != nil {
		lastErr = err
		log.Error().Err(err).Str("path", p.path).Msg("error closing parquet writer")
	}
	if err := p.file.Close(); err != nil {
		lastErr = err
		log.Error().Err(err).Str("path", p.path).Msg("error closing parquet file")
	}
	return lastErr
}
