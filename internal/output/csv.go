package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/chrisdamba/commutetracker/internal/models"
)

// CSVOutput writes records to one file; the header comes from the first record.
type CSVOutput struct {
	file          *os.File
	writer        *csv.Writer
	headerWritten bool
}

func NewCSVOutput(path string) (*CSVOutput, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv output: create %s: %w", path, err)
	}
	return &CSVOutput{file: file, writer: csv.NewWriter(file)}, nil
}

func (c *CSVOutput) WriteRecord(topic string, rec models.Record) error {
	if !c.headerWritten {
		if err := c.writer.Write(rec.Header()); err != nil {
			return err
		}
		c.headerWritten = true
	}

	if err := c.writer.Write(rec.Values()); err != nil {
		return err
	}

	c.writer.Flush()
	return c.writer.Error()
}

func (c *CSVOutput) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return err
	}
	return c.file.Close()
}
