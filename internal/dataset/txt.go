package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type txtLoader struct{}

func (txtLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

func (txtLoader) Load(_ context.Context, path string, opt Options) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		d, err := sniffTxtDelimiter(path)
		if err != nil {
			return nil, err
		}
		delim = d
	}
	return readDelimited(path, delim, opt)
}

// sniffTxtDelimiter picks the separator from the first non-empty line:
// tab when present, otherwise comma, otherwise semicolon.
func sniffTxtDelimiter(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.ContainsRune(line, '\t'):
			return '\t', nil
		case strings.ContainsRune(line, ','):
			return ',', nil
		case strings.ContainsRune(line, ';'):
			return ';', nil
		}
		// single-column file; any separator works
		return '\t', nil
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("sniff delimiter: %w", err)
	}
	return 0, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyTable)
}
