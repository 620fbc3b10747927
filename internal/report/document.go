package report

import "time"

// Document is a renderer-neutral report: header metadata plus ordered
// sections of text lines, tables, and charts. PDF and markdown renderers
// consume the same document.
type Document struct {
	Title       string
	Author      string
	Source      string // base name of the analyzed file
	Sheet       string // worksheet, when the source was a workbook
	GeneratedAt time.Time
	Sections    []Section
}

// Section is one titled block. Level 1 renders as a section heading, level 2
// as a subheading. PageBreak starts a new page first in paged renderers.
type Section struct {
	Title     string
	Level     int
	PageBreak bool
	Lines     []string
	Table     *Table
	Chart     *BarChart
}

// Table is a render-ready grid with optional relative column widths.
type Table struct {
	Headers []string
	Rows    [][]string
	// Widths are relative weights per column; nil means equal widths.
	Widths []float64
}

// BarChart is a simple horizontal bar chart, one bar per label.
type BarChart struct {
	Labels []string
	Values []float64
	Max    float64 // value mapped to a full-width bar
	Unit   string  // suffix for value labels, e.g. "%"
}
