package report

import (
	"fmt"
	"strings"
)

// Markdown renders the document as compact bracketed-section markdown
// suitable for terminals.
func Markdown(d *Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", strings.ToUpper(safeVal(d.Title)))
	fmt.Fprintf(&b, "Generated: %s\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))
	if d.Source != "" {
		src := d.Source
		if d.Sheet != "" {
			src = fmt.Sprintf("%s (sheet: %s)", src, d.Sheet)
		}
		fmt.Fprintf(&b, "Source: %s\n", src)
	}
	for _, s := range d.Sections {
		b.WriteString("\n")
		if s.Title != "" {
			if s.Level >= 2 {
				fmt.Fprintf(&b, "%s\n", safeVal(s.Title))
			} else {
				fmt.Fprintf(&b, "[%s]\n", strings.ToUpper(safeVal(s.Title)))
			}
		}
		for _, ln := range s.Lines {
			b.WriteString(safeVal(ln))
			b.WriteString("\n")
		}
		if s.Chart != nil {
			for i, label := range s.Chart.Labels {
				fmt.Fprintf(&b, "- %s: %.1f%s\n", safeVal(label), s.Chart.Values[i], s.Chart.Unit)
			}
		}
		if s.Table != nil {
			writeMarkdownTable(&b, s.Table)
		}
	}
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, t *Table) {
	b.WriteString("| ")
	for i, h := range t.Headers {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(h))
	}
	b.WriteString(" |\n| ")
	for i := range t.Headers {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range t.Rows {
		b.WriteString("| ")
		for i := range t.Headers {
			if i > 0 {
				b.WriteString(" | ")
			}
			v := ""
			if i < len(row) {
				v = row[i]
			}
			if len(v) > 80 {
				v = v[:77] + "..."
			}
			b.WriteString(safeVal(v))
		}
		b.WriteString(" |\n")
	}
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
