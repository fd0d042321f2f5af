package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/chrisdamba/commutetracker/internal/models"
)

// ConsoleOutput prints records as an aligned table once Close is called.
type ConsoleOutput struct {
	w      io.Writer
	header []string
	rows   [][]string
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteRecord(topic string, rec models.Record) error {
	if c.header == nil {
		c.header = rec.Header()
	}
	c.rows = append(c.rows, rec.Values())
	return nil
}

func (c *ConsoleOutput) Close() error {
	if len(c.rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(c.header, "\t"))
	for _, r := range c.rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}
