package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Address is one row of the input CSV. Destination is only read by the drive command.
type Address struct {
	Address     string `json:"address"`
	Destination string `json:"destination,omitempty"`
}

// LoadAddresses reads the address CSV at path. The "address" column is required.
func LoadAddresses(path string) ([]Address, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load addresses: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadAddresses(f)
}

func ReadAddresses(r io.Reader) ([]Address, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("load addresses: empty file")
		}
		return nil, fmt.Errorf("load addresses: read header: %w", err)
	}

	addrCol, destCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "address":
			addrCol = i
		case "destination":
			destCol = i
		}
	}
	if addrCol < 0 {
		return nil, errors.New("load addresses: missing required column \"address\"")
	}

	var out []Address
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load addresses: %w", err)
		}

		a := Address{Address: field(rec, addrCol)}
		if a.Address == "" {
			continue
		}
		if destCol >= 0 {
			a.Destination = field(rec, destCol)
		}
		out = append(out, a)
	}

	return out, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
