package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/SameerRanjanJha/quick-eda-app/internal/report"
)

// accent is the heading and chart color (#1f77b4).
var accent = [3]float64{0.122, 0.467, 0.706}

var black = [3]float64{0, 0, 0}

// Render lays the document out into PDF bytes and reports the page count.
func Render(doc *report.Document, cfg Config) ([]byte, int, error) {
	if doc == nil {
		return nil, 0, errors.New("nil document")
	}
	if cfg.Margin <= 0 {
		cfg.Margin = 72
	}
	if cfg.BaseFontSize <= 0 {
		cfg.BaseFontSize = 10
	}
	if cfg.TitleFontSize <= 0 {
		cfg.TitleFontSize = 24
	}

	w, h := pageDims(cfg.PageSize)
	d := &document{
		pageW:    w,
		pageH:    h,
		compress: cfg.Compress,
		info: map[string]string{
			"Title":    doc.Title,
			"Author":   firstNonEmpty(doc.Author, cfg.Author),
			"Producer": cfg.Producer,
		},
	}
	if doc.Source != "" {
		d.info["Subject"] = "Exploratory data analysis of " + doc.Source
	}
	if !doc.GeneratedAt.IsZero() {
		d.info["CreationDate"] = doc.GeneratedAt.UTC().Format("D:20060102150405Z")
	}

	lineH := cfg.BaseFontSize * 1.5
	avail := w - 2*cfg.Margin
	top := h - cfg.Margin

	var page bytes.Buffer
	y := top

	flush := func() {
		if page.Len() == 0 {
			return
		}
		if cfg.PageNumbers {
			label := fmt.Sprintf("Page %d", len(d.pages)+1)
			fs := cfg.BaseFontSize * 0.8
			x := (w - textWidth(label, fs)) / 2
			fmt.Fprintf(&page, "BT\n/%s %.1f Tf\n%.2f %.2f Td\n(%s) Tj\nET\n",
				fontRegular, fs, x, cfg.Margin/2, escapeString(label))
		}
		d.addPage(page.Bytes())
		page.Reset()
	}
	newPage := func() {
		flush()
		y = top
	}
	ensure := func(need float64) {
		if y-need < cfg.Margin {
			newPage()
		}
	}
	text := func(x float64, font string, size float64, s string) {
		fmt.Fprintf(&page, "BT\n/%s %.1f Tf\n%.2f %.2f Td\n(%s) Tj\nET\n",
			font, size, x, y, escapeString(s))
	}
	setFill := func(c [3]float64) {
		fmt.Fprintf(&page, "%.3f %.3f %.3f rg\n", c[0], c[1], c[2])
	}
	centered := func(font string, size float64, s string) {
		x := (w - textWidth(s, size)) / 2
		if x < cfg.Margin {
			x = cfg.Margin
		}
		text(x, font, size, s)
	}
	para := func(s string, font string, size float64) {
		maxChars := int(avail / (size * 0.5))
		for _, ln := range wrapText(s, maxChars) {
			ensure(lineH)
			text(cfg.Margin, font, size, ln)
			y -= lineH
		}
	}

	table := func(t *report.Table) {
		cols := len(t.Headers)
		if cols == 0 {
			return
		}
		widths := make([]float64, cols)
		if len(t.Widths) == cols {
			var sum float64
			for _, x := range t.Widths {
				sum += x
			}
			for i, x := range t.Widths {
				widths[i] = avail * x / sum
			}
		} else {
			for i := range widths {
				widths[i] = avail / float64(cols)
			}
		}
		fs := cfg.BaseFontSize * 0.9
		rowH := cfg.BaseFontSize * 1.4
		header := func() {
			ensure(rowH * 2)
			fmt.Fprintf(&page, "0.9 0.9 0.9 rg\n%.2f %.2f %.2f %.2f re\nf\n",
				cfg.Margin, y-3, avail, rowH-2)
			setFill(black)
			x := cfg.Margin
			for i, hd := range t.Headers {
				text(x+2, fontBold, fs, fitCell(hd, widths[i], fs))
				x += widths[i]
			}
			fmt.Fprintf(&page, "0.5 w\n%.2f %.2f m\n%.2f %.2f l\nS\n",
				cfg.Margin, y-3, cfg.Margin+avail, y-3)
			y -= rowH
		}
		header()
		for _, row := range t.Rows {
			if y-rowH < cfg.Margin {
				newPage()
				header()
			}
			x := cfg.Margin
			for i := 0; i < cols; i++ {
				v := ""
				if i < len(row) {
					v = row[i]
				}
				text(x+2, fontRegular, fs, fitCell(v, widths[i], fs))
				x += widths[i]
			}
			y -= rowH
		}
		y -= lineH / 2
	}

	chart := func(c *report.BarChart) {
		fs := cfg.BaseFontSize * 0.8
		const barH, gap = 8.0, 7.0
		labelW := avail * 0.3
		barMax := avail - labelW - 50
		for i, label := range c.Labels {
			ensure(barH + gap)
			frac := 0.0
			if c.Max > 0 {
				frac = c.Values[i] / c.Max
			}
			if frac < 0 {
				frac = 0
			} else if frac > 1 {
				frac = 1
			}
			text(cfg.Margin, fontRegular, fs, fitCell(label, labelW, fs))
			bw := barMax * frac
			if bw < 1 {
				bw = 1
			}
			fmt.Fprintf(&page, "%.3f %.3f %.3f rg\n%.2f %.2f %.2f %.2f re\nf\n",
				accent[0], accent[1], accent[2], cfg.Margin+labelW, y-1, bw, barH)
			setFill(black)
			text(cfg.Margin+labelW+bw+4, fontRegular, fs, fmt.Sprintf("%.1f%s", c.Values[i], c.Unit))
			y -= barH + gap
		}
		y -= lineH / 2
	}

	// Title block
	y -= cfg.TitleFontSize
	centered(fontBold, cfg.TitleFontSize, doc.Title)
	y -= lineH * 1.5
	para("Generated on: "+doc.GeneratedAt.Format("2006-01-02 15:04:05"), fontRegular, cfg.BaseFontSize)
	if doc.Source != "" {
		src := doc.Source
		if doc.Sheet != "" {
			src = fmt.Sprintf("%s (sheet: %s)", src, doc.Sheet)
		}
		para("Source file: "+src, fontRegular, cfg.BaseFontSize)
	}
	y -= lineH

	for _, s := range doc.Sections {
		if s.PageBreak && page.Len() > 0 {
			newPage()
		}
		if s.Title != "" {
			size := cfg.BaseFontSize + 6
			color := accent
			if s.Level >= 2 {
				size = cfg.BaseFontSize + 3
				color = black
			}
			ensure(size + lineH*2)
			y -= size * 0.4
			setFill(color)
			text(cfg.Margin, fontBold, size, s.Title)
			setFill(black)
			y -= lineH * 1.2
		}
		for _, ln := range s.Lines {
			para(ln, fontRegular, cfg.BaseFontSize)
		}
		if s.Chart != nil {
			chart(s.Chart)
		}
		if s.Table != nil {
			table(s.Table)
		}
		y -= lineH / 2
	}
	flush()
	if len(d.pages) == 0 {
		d.addPage(nil)
	}
	return d.build(), len(d.pages), nil
}

func textWidth(s string, size float64) float64 {
	return float64(len(s)) * size * 0.5
}

// wrapText word-wraps s to at most maxChars characters per line.
func wrapText(s string, maxChars int) []string {
	if maxChars < 8 {
		maxChars = 8
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 1)
	cur := words[0]
	for _, word := range words[1:] {
		if len(cur)+1+len(word) <= maxChars {
			cur += " " + word
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	return append(lines, cur)
}

// fitCell truncates a cell value to fit the column width.
func fitCell(s string, width, fontSize float64) string {
	maxChars := int((width - 4) / (fontSize * 0.5))
	if maxChars < 4 {
		maxChars = 4
	}
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-3]) + "..."
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
