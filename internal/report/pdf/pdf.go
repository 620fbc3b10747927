// Package pdf renders report documents as PDF files in pure Go. Pages are
// built as raw content streams and wrapped in a minimal PDF 1.4 object
// structure: catalog, page tree, two Type1 Helvetica fonts, per-page content
// streams with optional Flate compression, an info dictionary, and a
// cross-reference table.
package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
)

// Page size names accepted by Config.PageSize.
const (
	PageLetter = "letter"
	PageA4     = "a4"
)

// Config controls page geometry and rendering behavior.
type Config struct {
	PageSize      string
	Margin        float64
	BaseFontSize  float64
	TitleFontSize float64
	Compress      bool
	PageNumbers   bool
	Author        string
	Producer      string
}

// DefaultConfig returns US Letter geometry with one-inch margins.
func DefaultConfig() Config {
	return Config{
		PageSize:      PageLetter,
		Margin:        72,
		BaseFontSize:  10,
		TitleFontSize: 24,
		Compress:      true,
		PageNumbers:   true,
		Producer:      "quickeda",
	}
}

func pageDims(size string) (w, h float64) {
	switch strings.ToLower(size) {
	case PageA4:
		return 595.28, 841.89
	default:
		return 612, 792
	}
}

// Font resource names referenced by content streams.
const (
	fontRegular = "F1"
	fontBold    = "F2"
)

// document collects finished page content streams and assembles the file.
type document struct {
	pageW, pageH float64
	compress     bool
	info         map[string]string
	pages        [][]byte
}

// addPage takes ownership of one finished content stream.
func (d *document) addPage(content []byte) {
	if d.compress {
		var zbuf bytes.Buffer
		zw := zlib.NewWriter(&zbuf)
		zw.Write(content)
		zw.Close()
		d.pages = append(d.pages, zbuf.Bytes())
		return
	}
	d.pages = append(d.pages, append([]byte(nil), content...))
}

// build assembles the complete PDF file. Object layout: 1 catalog, 2 page
// tree, 3 and 4 fonts, then content stream and page object pairs, and the
// info dictionary last.
func (d *document) build() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	var offsets []int
	addObj := func(body []byte) int {
		n := len(offsets) + 1
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n", n)
		buf.Write(body)
		buf.WriteString("\nendobj\n")
		return n
	}

	n := len(d.pages)
	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 6+2*i)
	}

	addObj([]byte("<< /Type /Catalog /Pages 2 0 R >>"))
	addObj([]byte(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)))
	addObj([]byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"))
	addObj([]byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>"))

	for i, content := range d.pages {
		filter := ""
		if d.compress {
			filter = " /Filter /FlateDecode"
		}
		var stream bytes.Buffer
		fmt.Fprintf(&stream, "<< /Length %d%s >>\nstream\n", len(content), filter)
		stream.Write(content)
		stream.WriteString("\nendstream")
		addObj(stream.Bytes())

		addObj([]byte(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Contents %d 0 R "+
				"/Resources << /Font << /%s 3 0 R /%s 4 0 R >> >> >>",
			d.pageW, d.pageH, 5+2*i, fontRegular, fontBold)))
	}

	infoNum := addObj([]byte(d.infoDict()))

	xrefOff := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\n", len(offsets)+1, infoNum)
	fmt.Fprintf(&buf, "startxref\n%d\n", xrefOff)
	buf.WriteString("%%EOF\n")
	return buf.Bytes()
}

func (d *document) infoDict() string {
	var b strings.Builder
	b.WriteString("<<")
	for _, k := range []string{"Title", "Author", "Subject", "Producer", "CreationDate"} {
		if v := d.info[k]; v != "" {
			fmt.Fprintf(&b, " /%s (%s)", k, escapeString(v))
		}
	}
	b.WriteString(" >>")
	return b.String()
}

// escapeString escapes characters with special meaning inside PDF literal
// strings and maps non-Latin-1 runes to '?', since the fonts use
// WinAnsiEncoding.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n', '\r', '\t':
			b.WriteByte(' ')
		default:
			switch {
			case r < 32:
				b.WriteByte(' ')
			case r < 128:
				b.WriteRune(r)
			case r <= 255:
				b.WriteByte(byte(r))
			default:
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}
