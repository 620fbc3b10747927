package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how tabular files are read.
type Options struct {
	// Delimiter for CSV/TXT. If 0, the loader picks per format rules.
	Delimiter rune
	// SheetName selects a worksheet by name (takes precedence over SheetIndex).
	SheetName string
	// SheetIndex selects a worksheet by 1-based position; 0 means first sheet.
	SheetIndex int
	// MaxRows limits data rows loaded; 0 means unlimited.
	MaxRows int
}

// Loader reads one family of tabular file formats into a Table.
type Loader interface {
	CanLoad(filename string) bool
	Load(ctx context.Context, path string, opt Options) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Supported reports whether some registered loader accepts the filename.
func Supported(filename string) bool {
	for _, l := range registry {
		if l.CanLoad(filename) {
			return true
		}
	}
	return false
}

// ErrUnsupportedFormat indicates the file extension is not a supported tabular format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmptyTable indicates the source contained no usable rows.
var ErrEmptyTable = errors.New("file contains no rows")

// LoadFile selects a loader based on filename and reads the file into a Table.
func LoadFile(ctx context.Context, path string, opt Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		start := time.Now()
		t, err := l.Load(ctx, path, opt)
		if err != nil {
			return nil, err
		}
		zerolog.Ctx(ctx).Debug().
			Str("file", filepath.Base(path)).
			Int("rows", t.NumRows()).
			Int("cols", t.NumCols()).
			Dur("took", time.Since(start)).
			Msg("table loaded")
		return t, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xls" {
		return nil, fmt.Errorf("%w: legacy .xls workbooks cannot be read.\n"+
			"  File: %s\n\n"+
			"Solutions:\n"+
			"  1. Open the workbook in a spreadsheet application and save it as .xlsx\n"+
			"  2. Export the sheet as .csv",
			ErrUnsupportedFormat, filepath.Base(path))
	}
	if ext == "" {
		ext = "(no extension)"
	}
	return nil, fmt.Errorf("%w: %s\n"+
		"  File: %s\n"+
		"  Supported formats: .csv, .tsv, .txt, .xlsx",
		ErrUnsupportedFormat, ext, filepath.Base(path))
}

// FormatInfo describes one supported input format for help output.
type FormatInfo struct {
	Extension   string
	Description string
	Notes       string
}

// Formats lists the tabular formats LoadFile accepts.
func Formats() []FormatInfo {
	return []FormatInfo{
		{".csv", "comma-separated values", "override the separator with --delimiter"},
		{".tsv", "tab-separated values", ""},
		{".txt", "delimited text", "separator sniffed: tab, then comma, then semicolon"},
		{".xlsx", "Excel workbook (OOXML)", "pick a sheet with --sheet-name or --sheet-index; legacy .xls is not supported"},
	}
}

func init() {
	// Register default loaders
	Register(csvLoader{})
	Register(txtLoader{})
	Register(xlsxLoader{})
}
