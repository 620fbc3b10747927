package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/SameerRanjanJha/quick-eda-app/internal/analysis"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTitle is used when the caller supplies none.
const DefaultTitle = "Exploratory Data Analysis Report"

// Meta carries user-supplied report metadata.
type Meta struct {
	Title       string
	Author      string
	Source      string
	GeneratedAt time.Time
}

// DefaultFilename returns the conventional report filename for a run time,
// e.g. EDA_Report_20240311_154233.pdf.
func DefaultFilename(ts time.Time, ext string) string {
	return "EDA_Report_" + ts.Format("20060102_150405") + "." + strings.TrimPrefix(ext, ".")
}

// Build assembles the report document from a profile. Section order and
// formatting follow the fixed report layout: overview, column information,
// numeric summary on a fresh page, correlations, then per-column categorical
// breakdowns.
func Build(p *analysis.Profile, meta Meta) *Document {
	d := &Document{
		Title:       meta.Title,
		Author:      meta.Author,
		Source:      meta.Source,
		Sheet:       p.Sheet,
		GeneratedAt: meta.GeneratedAt,
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.GeneratedAt.IsZero() {
		d.GeneratedAt = time.Now()
	}

	d.Sections = append(d.Sections, overviewSection(p), columnSection(p))
	if chart := missingChart(p); chart != nil {
		d.Sections = append(d.Sections, Section{Title: "Missing Values", Level: 1, Chart: chart})
	}
	if s := numericSection(p); s != nil {
		d.Sections = append(d.Sections, *s)
	}
	if s := corrSection(p); s != nil {
		d.Sections = append(d.Sections, *s)
	}
	d.Sections = append(d.Sections, categoricalSections(p)...)
	if s := outlierSection(p); s != nil {
		d.Sections = append(d.Sections, *s)
	}
	if len(p.Warnings) > 0 {
		s := Section{Title: "Notes", Level: 1}
		for _, w := range p.Warnings {
			s.Lines = append(s.Lines, "- "+w)
		}
		d.Sections = append(d.Sections, s)
	}
	return d
}

func overviewSection(p *analysis.Profile) Section {
	t := &Table{
		Headers: []string{"Metric", "Value"},
		Widths:  []float64{1, 1},
		Rows: [][]string{
			{"Number of Rows", humanInt(p.Rows)},
			{"Number of Columns", humanInt(p.Cols)},
			{"Memory Usage", fmt.Sprintf("%.2f MB", p.MemoryMB())},
			{"Duplicate Rows", humanInt(p.DuplicateRows)},
		},
	}
	return Section{Title: "Dataset Overview", Level: 1, Table: t}
}

func columnSection(p *analysis.Profile) Section {
	t := &Table{
		Headers: []string{"Column Name", "Data Type", "Missing Values", "Missing %"},
		Widths:  []float64{2, 1, 1, 1},
	}
	for _, c := range p.Columns {
		t.Rows = append(t.Rows, []string{c.Name, c.Kind, humanInt(c.Missing), fmt.Sprintf("%.1f%%", c.MissingPct)})
	}
	return Section{Title: "Column Information", Level: 1, Table: t}
}

func missingChart(p *analysis.Profile) *BarChart {
	var c BarChart
	for _, col := range p.Columns {
		if col.Missing == 0 {
			continue
		}
		c.Labels = append(c.Labels, col.Name)
		c.Values = append(c.Values, col.MissingPct)
	}
	if len(c.Labels) == 0 {
		return nil
	}
	c.Max = 100
	c.Unit = "%"
	return &c
}

func numericSection(p *analysis.Profile) *Section {
	if len(p.Numeric) == 0 {
		return nil
	}
	t := &Table{
		Headers: []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"},
		Widths:  []float64{2, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	for _, n := range p.Numeric {
		t.Rows = append(t.Rows, []string{
			n.Name, humanInt(n.Count),
			fmtFloat(n.Mean), fmtFloat(n.Std), fmtFloat(n.Min),
			fmtFloat(n.Q25), fmtFloat(n.Median), fmtFloat(n.Q75), fmtFloat(n.Max),
		})
	}
	return &Section{Title: "Numerical Columns Summary", Level: 1, PageBreak: true, Table: t}
}

func corrSection(p *analysis.Profile) *Section {
	pairs := p.Corr.TopPairs(10)
	if len(pairs) == 0 {
		return nil
	}
	t := &Table{Headers: []string{"Column A", "Column B", "Pearson r"}, Widths: []float64{2, 2, 1}}
	for _, pr := range pairs {
		t.Rows = append(t.Rows, []string{pr.A, pr.B, fmt.Sprintf("%.3f", pr.R)})
	}
	return &Section{Title: "Correlations", Level: 1, Table: t}
}

func categoricalSections(p *analysis.Profile) []Section {
	if len(p.Categorical) == 0 {
		return nil
	}
	out := []Section{{Title: "Categorical Columns Summary", Level: 1}}
	for _, c := range p.Categorical {
		s := Section{Title: "Column: " + c.Name, Level: 2}
		s.Lines = append(s.Lines, "Unique values: "+humanInt(c.Unique))
		top := c.Top
		if len(top) > 5 {
			top = top[:5]
		}
		if len(top) > 0 {
			s.Lines = append(s.Lines, "Top values:")
			t := &Table{Headers: []string{"Value", "Count"}, Widths: []float64{3, 1}}
			for _, vc := range top {
				t.Rows = append(t.Rows, []string{truncateValue(vc.Value, 30), humanInt(vc.Count)})
			}
			s.Table = t
		}
		out = append(out, s)
	}
	return out
}

func outlierSection(p *analysis.Profile) *Section {
	var lines []string
	for _, n := range p.Numeric {
		if n.OutlierThreshold <= 0 || n.Outliers == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %d value(s) beyond |z| > %.1f (max |z| = %.2f)",
			n.Name, n.Outliers, n.OutlierThreshold, n.MaxAbsZ))
	}
	if len(lines) == 0 {
		return nil
	}
	return &Section{Title: "Notable Outliers", Level: 1, Lines: lines}
}

var enPrinter = message.NewPrinter(language.English)

// humanInt formats n with thousands separators.
func humanInt(n int) string { return enPrinter.Sprintf("%d", n) }

func fmtFloat(v float64) string { return fmt.Sprintf("%.2f", v) }

// truncateValue shortens long cell values for display.
func truncateValue(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
