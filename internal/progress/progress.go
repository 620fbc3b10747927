// Package progress reports staged pipeline progress to the user.
package progress

import (
	"fmt"
	"io"
	"strings"
)

// Reporter receives stage updates as the analysis pipeline advances.
type Reporter interface {
	// Stage reports completion in percent with a short caption.
	Stage(pct int, caption string)
	// Done finalizes the display once the pipeline has finished.
	Done()
}

const barWidth = 30

// Terminal draws a single-line progress bar, redrawn in place.
type Terminal struct {
	w io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Stage(pct int, caption string) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := barWidth * pct / 100
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	// Caption is padded so a shorter caption fully overwrites the previous one.
	fmt.Fprintf(t.w, "\r[%s] %3d%% %-45s", bar, pct, caption)
}

func (t *Terminal) Done() {
	fmt.Fprintln(t.w)
}

// Plain prints one line per stage, for non-interactive output.
type Plain struct {
	w io.Writer
}

func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (p *Plain) Stage(pct int, caption string) {
	fmt.Fprintf(p.w, "%3d%% %s\n", pct, caption)
}

func (p *Plain) Done() {}

// Nop discards all updates.
type Nop struct{}

func (Nop) Stage(int, string) {}
func (Nop) Done()             {}
