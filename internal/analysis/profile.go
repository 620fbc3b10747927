package analysis

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/SameerRanjanJha/quick-eda-app/internal/dataset"
	"github.com/rs/zerolog"
)

// Column kinds inferred from cell contents.
const (
	KindNumeric     = "numeric"
	KindDatetime    = "datetime"
	KindCategorical = "categorical"
	KindText        = "text"
)

const (
	maxDistinctTracked = 10000 // guard memory on high-cardinality columns
	maxCategoryLen     = 64    // longer values are treated as free text
	minOutlierSample   = 8
)

// Options controls profiling behavior.
type Options struct {
	// TopValues caps how many top distinct values are reported per
	// non-numeric column.
	TopValues int
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outliers counts robust Z-score outliers (MAD) per numeric column.
	Outliers         bool
	OutlierThreshold float64
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// DefaultOptions returns reasonable defaults for dataset profiling.
func DefaultOptions() Options {
	return Options{
		TopValues:        10,
		Correlations:     true,
		OutlierThreshold: 3.5,
	}
}

// Profile is a descriptive analysis of one loaded table.
type Profile struct {
	Source        string
	Sheet         string
	Rows          int
	Cols          int
	MemoryBytes   int64
	DuplicateRows int
	Columns       []ColumnProfile
	Numeric       []NumericSummary
	Categorical   []CategorySummary
	Corr          *CorrMatrix
	Warnings      []string
}

// MemoryMB returns the memory estimate in megabytes.
func (p *Profile) MemoryMB() float64 { return float64(p.MemoryBytes) / (1024 * 1024) }

// ColumnProfile captures the inferred type and missingness of one column.
type ColumnProfile struct {
	Name       string
	Kind       string
	NonNull    int
	Missing    int
	MissingPct float64
	Unique     int
	Min        string
	Max        string
}

// NumericSummary is the eight-number describe of a numeric column.
type NumericSummary struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
	// Robust outlier counts (populated only when Options.Outliers is set).
	Outliers         int
	MaxAbsZ          float64
	OutlierThreshold float64
}

// CategorySummary lists the most frequent values of a non-numeric column.
type CategorySummary struct {
	Name   string
	Unique int
	Top    []ValueCount
}

// ValueCount is one distinct value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric
// columns. Cells without enough complete pairs are NaN.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// PairCorr is a single correlation pair.
type PairCorr struct {
	A, B string
	R    float64
}

// ProgressFunc receives stage callbacks while a profile is built. pct is
// 0..100; caption names the stage that just started.
type ProgressFunc func(pct int, caption string)

// Analyze profiles the table in stages, firing the optional progress callback
// at each stage boundary.
func Analyze(ctx context.Context, t *dataset.Table, opt Options, progress ProgressFunc) (*Profile, error) {
	if t == nil || t.NumCols() == 0 {
		return nil, errors.New("table has no columns")
	}
	if progress == nil {
		progress = func(int, string) {}
	}
	if opt.TopValues <= 0 {
		opt.TopValues = 10
	}
	start := time.Now()

	p := &Profile{Source: t.Source, Sheet: t.Sheet, Rows: t.NumRows(), Cols: t.NumCols()}
	p.Warnings = append(p.Warnings, t.Warnings...)

	progress(10, "Analyzing basic dataset information...")
	cols := scanColumns(t, opt)
	p.MemoryBytes = memoryEstimate(t, cols)

	progress(25, "Checking for missing values...")
	for _, c := range cols {
		p.Columns = append(p.Columns, c.profile(t.NumRows()))
	}

	progress(50, "Analyzing numerical columns...")
	var numIdx []int
	for i, c := range cols {
		if c.kind != KindNumeric || len(c.nums) == 0 {
			continue
		}
		numIdx = append(numIdx, i)
		s := describe(c.name, c.nums)
		if opt.Outliers && len(c.nums) >= minOutlierSample {
			thr := opt.OutlierThreshold
			if thr <= 0 {
				thr = 3.5
			}
			s.Outliers, s.MaxAbsZ = robustOutliers(c.nums, thr)
			s.OutlierThreshold = thr
		}
		p.Numeric = append(p.Numeric, s)
	}
	if opt.Correlations && len(numIdx) >= 2 {
		p.Corr = correlations(cols, numIdx)
	}

	progress(75, "Analyzing categorical columns...")
	for _, c := range cols {
		if c.kind == KindNumeric || len(c.counts) == 0 {
			continue
		}
		p.Categorical = append(p.Categorical, c.categorySummary(opt.TopValues))
	}

	progress(90, "Checking for duplicate rows...")
	p.DuplicateRows = duplicateRows(t)

	progress(100, "Analysis complete!")
	zerolog.Ctx(ctx).Debug().
		Int("rows", p.Rows).
		Int("cols", p.Cols).
		Int("numeric", len(p.Numeric)).
		Int("duplicates", p.DuplicateRows).
		Dur("took", time.Since(start)).
		Msg("profile built")
	return p, nil
}

// colData accumulates per-column state during the scan stage.
type colData struct {
	name     string
	kind     string
	miss     int
	nums     []float64
	rowNum   []float64 // value per row index, NaN when absent
	times    []time.Time
	textCnt  int
	counts   map[string]int
	examples []string
}

func scanColumns(t *dataset.Table, opt Options) []*colData {
	ncol := t.NumCols()
	cols := make([]*colData, ncol)
	for j := range cols {
		rn := make([]float64, t.NumRows())
		for i := range rn {
			rn[i] = math.NaN()
		}
		cols[j] = &colData{name: t.Headers[j], counts: make(map[string]int), rowNum: rn}
	}
	for i, row := range t.Rows {
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(row) {
				v = strings.TrimSpace(row[j])
			}
			c := cols[j]
			if isMissing(v) {
				c.miss++
				continue
			}
			if x, ok := parseNumeric(v, opt); ok {
				c.nums = append(c.nums, x)
				c.rowNum[i] = x
				continue
			}
			if ts, ok := parseTimeMaybe(v); ok {
				c.times = append(c.times, ts)
			} else {
				c.textCnt++
			}
			if len(c.counts) <= maxDistinctTracked && len(v) <= maxCategoryLen {
				c.counts[v]++
			}
			if len(c.examples) < 3 {
				c.examples = append(c.examples, v)
			}
		}
	}
	for _, c := range cols {
		c.kind = inferKind(c)
	}
	return cols
}

// inferKind decides the column kind by predominant parsed type; ties favor
// numeric. Columns with no non-missing cells are text.
func inferKind(c *colData) string {
	numCnt, dtCnt := len(c.nums), len(c.times)
	switch {
	case numCnt >= dtCnt && numCnt >= c.textCnt && numCnt > 0:
		return KindNumeric
	case dtCnt >= c.textCnt && dtCnt > 0:
		return KindDatetime
	case len(c.counts) > 0:
		return KindCategorical
	default:
		return KindText
	}
}

func (c *colData) profile(rows int) ColumnProfile {
	cp := ColumnProfile{Name: c.name, Kind: c.kind, NonNull: rows - c.miss, Missing: c.miss}
	if rows > 0 {
		cp.MissingPct = float64(c.miss) * 100 / float64(rows)
	}
	switch c.kind {
	case KindNumeric:
		if len(c.nums) > 0 {
			lo, hi := minMax(c.nums)
			cp.Min = trimFloat(lo)
			cp.Max = trimFloat(hi)
		}
	case KindDatetime:
		if len(c.times) > 0 {
			lo, hi := c.times[0], c.times[0]
			for _, ts := range c.times[1:] {
				if ts.Before(lo) {
					lo = ts
				}
				if ts.After(hi) {
					hi = ts
				}
			}
			cp.Min = lo.Format("2006-01-02")
			cp.Max = hi.Format("2006-01-02")
		}
		cp.Unique = len(c.counts)
	default:
		cp.Unique = len(c.counts)
	}
	return cp
}

func (c *colData) categorySummary(topN int) CategorySummary {
	tops := make([]ValueCount, 0, len(c.counts))
	for v, n := range c.counts {
		tops = append(tops, ValueCount{Value: v, Count: n})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > topN {
		tops = tops[:topN]
	}
	return CategorySummary{Name: c.name, Unique: len(c.counts), Top: tops}
}

// memoryEstimate approximates a typed in-memory footprint: eight bytes per
// numeric cell, string header plus content bytes for everything else.
func memoryEstimate(t *dataset.Table, cols []*colData) int64 {
	const strOverhead = 16
	var total int64
	for j, c := range cols {
		total += int64(len(c.name)) + strOverhead
		if c.kind == KindNumeric {
			total += int64(8 * t.NumRows())
			continue
		}
		for _, row := range t.Rows {
			if j < len(row) {
				total += int64(len(row[j])) + strOverhead
			}
		}
	}
	return total
}

// duplicateRows counts rows identical to an earlier row.
func duplicateRows(t *dataset.Table) int {
	seen := make(map[string]struct{}, len(t.Rows))
	dups := 0
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
