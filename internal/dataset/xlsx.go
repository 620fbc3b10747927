package dataset

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// SheetError reports a worksheet-level problem in a workbook.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error { return e.Err }

func (xlsxLoader) Load(ctx context.Context, path string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", filepath.Base(path))
	}
	sheet := sheets[0]
	switch {
	case opt.SheetName != "":
		found := false
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				found = true
				break
			}
		}
		if !found {
			return nil, &SheetError{Sheet: opt.SheetName, Err: fmt.Errorf("not found (available: %s)", strings.Join(sheets, ", "))}
		}
	case opt.SheetIndex > 0:
		if opt.SheetIndex > len(sheets) {
			return nil, &SheetError{Sheet: fmt.Sprintf("#%d", opt.SheetIndex), Err: fmt.Errorf("index out of range, workbook has %d sheet(s)", len(sheets))}
		}
		sheet = sheets[opt.SheetIndex-1]
	}
	zerolog.Ctx(ctx).Debug().Str("sheet", sheet).Int("sheets", len(sheets)).Msg("worksheet selected")

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SheetError{Sheet: sheet, Err: err}
	}
	if len(rows) == 0 {
		return nil, &SheetError{Sheet: sheet, Err: ErrEmptyTable}
	}

	// GetRows trims trailing empty cells per row, so size the header to the
	// widest row in the sheet.
	ncol := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) > ncol {
			ncol = len(r)
		}
	}
	headers := make([]string, ncol)
	for i := 0; i < ncol; i++ {
		if i < len(rows[0]) {
			headers[i] = strings.TrimSpace(rows[0][i])
		}
		if headers[i] == "" {
			letter, _ := excelize.ColumnNumberToName(i + 1)
			headers[i] = "Column " + letter
		}
	}

	t := &Table{Source: path, Sheet: sheet, Headers: headers}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	total := 0
	for _, r := range rows[1:] {
		total++
		if len(t.Rows) >= maxRows {
			continue
		}
		row := make([]string, ncol)
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) < total {
		t.Warnings = append(t.Warnings, fmt.Sprintf("loaded %d of %d rows (max-rows limit)", len(t.Rows), total))
	}
	return t, nil
}
