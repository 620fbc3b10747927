package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvLoader) Load(_ context.Context, path string, opt Options) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
		if strings.HasSuffix(strings.ToLower(path), ".tsv") {
			delim = '\t'
		}
	}
	return readDelimited(path, delim, opt)
}

// readDelimited reads a delimiter-separated text file into a Table. The first
// row is the header; shorter data rows are padded to the header width, longer
// ones are truncated with a warning.
func readDelimited(path string, delim rune, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyTable)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	headers := make([]string, len(header))
	for i := range header {
		headers[i] = strings.TrimSpace(header[i])
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	t := &Table{Source: path, Headers: headers}
	ncol := len(headers)
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	total := 0
	wide := false
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", total+2, err)
		}
		total++
		if len(t.Rows) >= maxRows {
			continue
		}
		row := make([]string, ncol)
		if copy(row, rec) < len(rec) {
			wide = true
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) < total {
		t.Warnings = append(t.Warnings, fmt.Sprintf("loaded %d of %d rows (max-rows limit)", len(t.Rows), total))
	}
	if wide {
		t.Warnings = append(t.Warnings, "some rows had more fields than the header; extra fields were dropped")
	}
	return t, nil
}
