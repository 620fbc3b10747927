// Package history records generated reports in a per-user JSON file.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/SameerRanjanJha/quick-eda-app/internal/config"
	"github.com/SameerRanjanJha/quick-eda-app/internal/utils"
	"github.com/google/uuid"
)

const historyFileName = "history.json"

// Entry describes one generated report.
type Entry struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Output      string    `json:"output"`
	Format      string    `json:"format"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Store persists report history as a JSON file, newest first.
type Store struct {
	path  string
	limit int
}

// NewStore returns a store backed by path, keeping at most limit entries.
func NewStore(path string, limit int) *Store {
	if limit <= 0 {
		limit = 50
	}
	return &Store{path: path, limit: limit}
}

// DefaultPath returns ~/.quickeda/history.json.
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyFileName), nil
}

// Load reads all recorded entries. A missing file is an empty history.
func (s *Store) Load() ([]Entry, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return entries, nil
}

// Record prepends an entry and trims the file to the configured limit.
// Missing ID and timestamp fields are filled in.
func (s *Store) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.GeneratedAt.IsZero() {
		e.GeneratedAt = time.Now()
	}
	entries, err := s.Load()
	if err != nil {
		return err
	}
	entries = append([]Entry{e}, entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	if err := utils.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("ensure history dir: %w", err)
	}
	data, err := utils.PrettyJSON(entries)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(s.path, data)
}

// Clear removes the history file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
