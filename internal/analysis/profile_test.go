package analysis

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/SameerRanjanJha/quick-eda-app/internal/dataset"
)

func sampleTable() *dataset.Table {
	return &dataset.Table{
		Source:  "orders.csv",
		Headers: []string{"id", "price", "category", "ordered", "note"},
		Rows: [][]string{
			{"1", "10.5", "tools", "2024-01-02", "first order"},
			{"2", "20.5", "tools", "2024-01-03", "rush delivery please"},
			{"3", "30.0", "toys", "2024-01-04", "gift wrap"},
			{"4", "NA", "toys", "2024-01-05", "second address"},
			{"5", "25.0", "", "2024-01-06", "leave at door"},
			{"3", "30.0", "toys", "2024-01-04", "gift wrap"},
		},
	}
}

func TestAnalyzeProfileShape(t *testing.T) {
	tbl := sampleTable()
	p, err := Analyze(context.Background(), tbl, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Rows != 6 || p.Cols != 5 {
		t.Errorf("shape = %dx%d, want 6x5", p.Rows, p.Cols)
	}
	if len(p.Columns) != 5 {
		t.Fatalf("expected 5 column profiles, got %d", len(p.Columns))
	}

	kinds := map[string]string{}
	for _, c := range p.Columns {
		kinds[c.Name] = c.Kind
	}
	want := map[string]string{
		"id":       KindNumeric,
		"price":    KindNumeric,
		"category": KindCategorical,
		"ordered":  KindDatetime,
		"note":     KindCategorical,
	}
	for name, k := range want {
		if kinds[name] != k {
			t.Errorf("column %s kind = %s, want %s", name, kinds[name], k)
		}
	}

	for _, c := range p.Columns {
		switch c.Name {
		case "price":
			if c.Missing != 1 || c.NonNull != 5 {
				t.Errorf("price missing/non-null = %d/%d, want 1/5", c.Missing, c.NonNull)
			}
			if math.Abs(c.MissingPct-100.0/6) > 1e-9 {
				t.Errorf("price missing pct = %v", c.MissingPct)
			}
		case "category":
			if c.Missing != 1 {
				t.Errorf("category missing = %d, want 1 (empty cell)", c.Missing)
			}
			if c.Unique != 2 {
				t.Errorf("category unique = %d, want 2", c.Unique)
			}
		case "ordered":
			if c.Min != "2024-01-02" || c.Max != "2024-01-06" {
				t.Errorf("ordered range = %s..%s", c.Min, c.Max)
			}
		}
	}

	if p.DuplicateRows != 1 {
		t.Errorf("duplicate rows = %d, want 1", p.DuplicateRows)
	}
	if p.MemoryBytes <= 0 {
		t.Errorf("memory estimate should be positive, got %d", p.MemoryBytes)
	}
}

func TestAnalyzeStageSequence(t *testing.T) {
	var stages []string
	progress := func(pct int, caption string) {
		stages = append(stages, fmt.Sprintf("%d %s", pct, caption))
	}
	if _, err := Analyze(context.Background(), sampleTable(), DefaultOptions(), progress); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := []string{
		"10 Analyzing basic dataset information...",
		"25 Checking for missing values...",
		"50 Analyzing numerical columns...",
		"75 Analyzing categorical columns...",
		"90 Checking for duplicate rows...",
		"100 Analysis complete!",
	}
	if len(stages) != len(want) {
		t.Fatalf("got %d stages, want %d: %v", len(stages), len(want), stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d = %q, want %q", i, stages[i], want[i])
		}
	}
}

func TestAnalyzeEmptyTable(t *testing.T) {
	if _, err := Analyze(context.Background(), &dataset.Table{}, DefaultOptions(), nil); err == nil {
		t.Fatal("expected error for table without columns")
	}
	if _, err := Analyze(context.Background(), nil, DefaultOptions(), nil); err == nil {
		t.Fatal("expected error for nil table")
	}
}

func TestAnalyzeHeaderOnlyTable(t *testing.T) {
	tab := &dataset.Table{Source: "empty.csv", Headers: []string{"a", "b"}}
	p, err := Analyze(context.Background(), tab, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Rows != 0 || p.Cols != 2 {
		t.Errorf("got %dx%d, want 0x2", p.Rows, p.Cols)
	}
	if len(p.Columns) != 2 {
		t.Fatalf("expected a profile per column, got %d", len(p.Columns))
	}
	for _, c := range p.Columns {
		if c.Kind != KindText {
			t.Errorf("column %s kind = %q, want text", c.Name, c.Kind)
		}
		if c.MissingPct != 0 {
			t.Errorf("column %s missing pct = %v, want 0", c.Name, c.MissingPct)
		}
	}
	if len(p.Numeric) != 0 || len(p.Categorical) != 0 {
		t.Errorf("no summaries expected for an empty table: %+v", p)
	}
}

func TestDescribe(t *testing.T) {
	// Duplicated middle order statistics keep the quartiles independent of
	// the interpolation convention.
	vals := []float64{4, 2, 7, 5, 5, 4, 9, 7}
	s := describe("x", vals)

	if s.Count != 8 {
		t.Errorf("count = %d", s.Count)
	}
	if math.Abs(s.Mean-5.375) > 1e-12 {
		t.Errorf("mean = %v, want 5.375", s.Mean)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("min/max = %v/%v, want 2/9", s.Min, s.Max)
	}
	if s.Q25 != 4 || s.Median != 5 || s.Q75 != 7 {
		t.Errorf("quartiles = %v/%v/%v, want 4/5/7", s.Q25, s.Median, s.Q75)
	}
	// Sample variance: sum of squared deviations 33.875 over n-1.
	if math.Abs(s.Std*s.Std-33.875/7) > 1e-9 {
		t.Errorf("std = %v", s.Std)
	}
}

func TestDescribeSingleValue(t *testing.T) {
	s := describe("x", []float64{42})
	if s.Std != 0 {
		t.Errorf("std of a single value = %v, want 0", s.Std)
	}
	if s.Min != 42 || s.Max != 42 || s.Mean != 42 {
		t.Errorf("degenerate summary: %+v", s)
	}
}

func TestRobustOutliers(t *testing.T) {
	vals := []float64{10, 11, 12, 10, 11, 12, 10, 100}
	count, maxZ := robustOutliers(vals, 3.5)
	if count != 1 {
		t.Errorf("outlier count = %d, want 1", count)
	}
	if maxZ < 50 {
		t.Errorf("max |z| = %v, want the extreme value to dominate", maxZ)
	}

	// Constant data has zero MAD and therefore no outliers.
	count, maxZ = robustOutliers([]float64{5, 5, 5, 5, 5, 5, 5, 5}, 3.5)
	if count != 0 || maxZ != 0 {
		t.Errorf("constant data: count=%d maxZ=%v, want 0/0", count, maxZ)
	}
}

func TestAnalyzeOutliersGated(t *testing.T) {
	tbl := &dataset.Table{
		Headers: []string{"v"},
		Rows: [][]string{
			{"10"}, {"11"}, {"12"}, {"10"}, {"11"}, {"12"}, {"10"}, {"100"},
		},
	}
	opt := DefaultOptions()
	opt.Outliers = true
	p, err := Analyze(context.Background(), tbl, opt, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(p.Numeric) != 1 {
		t.Fatalf("expected one numeric summary, got %d", len(p.Numeric))
	}
	if p.Numeric[0].Outliers != 1 {
		t.Errorf("outliers = %d, want 1", p.Numeric[0].Outliers)
	}
	if p.Numeric[0].OutlierThreshold != 3.5 {
		t.Errorf("threshold = %v, want 3.5", p.Numeric[0].OutlierThreshold)
	}

	opt.Outliers = false
	p, err = Analyze(context.Background(), tbl, opt, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Numeric[0].Outliers != 0 || p.Numeric[0].OutlierThreshold != 0 {
		t.Errorf("outlier detection should be off: %+v", p.Numeric[0])
	}
}

func TestCorrelations(t *testing.T) {
	tbl := &dataset.Table{
		Headers: []string{"x", "y", "z"},
		Rows: [][]string{
			{"1", "2", "10"},
			{"2", "4", "8"},
			{"3", "6", "6"},
			{"4", "8", "4"},
			{"5", "10", "2"},
		},
	}
	p, err := Analyze(context.Background(), tbl, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Corr == nil {
		t.Fatal("expected a correlation matrix")
	}
	if len(p.Corr.Columns) != 3 {
		t.Fatalf("corr columns = %v", p.Corr.Columns)
	}
	get := func(a, b string) float64 {
		var ai, bi = -1, -1
		for i, n := range p.Corr.Columns {
			if n == a {
				ai = i
			}
			if n == b {
				bi = i
			}
		}
		return p.Corr.Values[ai][bi]
	}
	if r := get("x", "y"); r < 0.999 {
		t.Errorf("corr(x,y) = %v, want ~1", r)
	}
	if r := get("x", "z"); r > -0.999 {
		t.Errorf("corr(x,z) = %v, want ~-1", r)
	}
	if r := get("x", "x"); r != 1 {
		t.Errorf("diagonal = %v, want 1", r)
	}

	pairs := p.Corr.TopPairs(10)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	for _, pr := range pairs {
		if math.Abs(pr.R) < 0.999 {
			t.Errorf("pair %s-%s r=%v, want |r|~1", pr.A, pr.B, pr.R)
		}
	}
}

func TestPairCorrTooFewPairs(t *testing.T) {
	nan := math.NaN()
	xs := []float64{1, 2, nan, nan, nan}
	ys := []float64{2, 4, nan, nan, nan}
	if r := pairCorr(xs, ys); !math.IsNaN(r) {
		t.Errorf("r with 2 complete pairs = %v, want NaN", r)
	}
}

func TestCorrelationsSkippedWhenDisabled(t *testing.T) {
	tbl := &dataset.Table{
		Headers: []string{"x", "y"},
		Rows:    [][]string{{"1", "2"}, {"2", "4"}, {"3", "6"}},
	}
	opt := DefaultOptions()
	opt.Correlations = false
	p, err := Analyze(context.Background(), tbl, opt, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Corr != nil {
		t.Error("correlations should be skipped when disabled")
	}
}

func TestInferKindTieFavorsNumeric(t *testing.T) {
	tbl := &dataset.Table{
		Headers: []string{"tie"},
		Rows:    [][]string{{"1"}, {"2"}, {"a"}, {"b"}},
	}
	p, err := Analyze(context.Background(), tbl, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Columns[0].Kind != KindNumeric {
		t.Errorf("tie kind = %s, want numeric", p.Columns[0].Kind)
	}
}

func TestInferKindAllMissing(t *testing.T) {
	tbl := &dataset.Table{
		Headers: []string{"blank"},
		Rows:    [][]string{{"na"}, {""}, {"NULL"}, {"-"}},
	}
	p, err := Analyze(context.Background(), tbl, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	c := p.Columns[0]
	if c.Kind != KindText {
		t.Errorf("kind = %s, want text", c.Kind)
	}
	if c.Missing != 4 || c.MissingPct != 100 {
		t.Errorf("missing = %d (%.1f%%), want 4 (100%%)", c.Missing, c.MissingPct)
	}
}

func TestCategorySummaryOrderAndCap(t *testing.T) {
	tbl := &dataset.Table{
		Headers: []string{"fruit"},
		Rows: [][]string{
			{"apple"}, {"apple"}, {"apple"},
			{"pear"}, {"pear"},
			{"plum"}, {"kiwi"},
		},
	}
	opt := DefaultOptions()
	opt.TopValues = 3
	p, err := Analyze(context.Background(), tbl, opt, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(p.Categorical) != 1 {
		t.Fatalf("expected one categorical summary, got %d", len(p.Categorical))
	}
	c := p.Categorical[0]
	if c.Unique != 4 {
		t.Errorf("unique = %d, want 4", c.Unique)
	}
	if len(c.Top) != 3 {
		t.Fatalf("top capped at 3, got %d", len(c.Top))
	}
	if c.Top[0].Value != "apple" || c.Top[0].Count != 3 {
		t.Errorf("top[0] = %+v", c.Top[0])
	}
	if c.Top[1].Value != "pear" || c.Top[1].Count != 2 {
		t.Errorf("top[1] = %+v", c.Top[1])
	}
	// Count ties break alphabetically.
	if c.Top[2].Value != "kiwi" {
		t.Errorf("top[2] = %+v, want kiwi before plum", c.Top[2])
	}
}

func TestWarningsPropagate(t *testing.T) {
	tbl := sampleTable()
	tbl.Warnings = []string{"loaded 6 of 100 rows (max-rows limit)"}
	p, err := Analyze(context.Background(), tbl, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(p.Warnings) != 1 || p.Warnings[0] != tbl.Warnings[0] {
		t.Errorf("warnings = %v", p.Warnings)
	}
}
