package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chrisdamba/commutetracker/internal/models"
)

// JSONOutput writes one JSON document per line.
type JSONOutput struct {
	file *os.File
}

func NewJSONOutput(path string) (*JSONOutput, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("json output: create %s: %w", path, err)
	}
	return &JSONOutput{file: file}, nil
}

func (j *JSONOutput) WriteRecord(topic string, rec models.Record) error {
	jsonData, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if _, err := j.file.Write(jsonData); err != nil {
		return err
	}
	_, err = j.file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	return j.file.Close()
}
