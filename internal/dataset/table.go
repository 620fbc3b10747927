package dataset

// Table is an in-memory tabular dataset: a header row plus data rows.
// Cells are kept as raw strings; type inference happens downstream.
type Table struct {
	Source   string // path of the file the table was loaded from
	Sheet    string // worksheet name for spreadsheet sources, empty otherwise
	Headers  []string
	Rows     [][]string
	Warnings []string
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Headers) }

// Column returns all values of column i in row order.
func (t *Table) Column(i int) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		out = append(out, v)
	}
	return out
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) [][]string {
	if n <= 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}
