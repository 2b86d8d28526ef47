// Package history keeps the ordered record of submitted lines. Entries are
// stored verbatim, including `.` and `!` markers, so they can be replayed or
// re-edited later. When backed by a file, each submitted line is appended
// immediately rather than on shutdown, so a crash loses nothing.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// History is an append-only list of submitted lines, optionally persisted.
type History struct {
	path    string
	entries []string
}

// New returns an in-memory history.
func New() *History {
	return &History{}
}

// Load reads the history file at path, creating an empty history if the file
// does not exist yet.
func Load(path string) (*History, error) {
	h := &History{path: path}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		h.entries = append(h.entries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return h, nil
}

// Append records a submitted line verbatim. Blank lines are ignored. When
// the history is file-backed the line is flushed to disk immediately.
func (h *History) Append(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	h.entries = append(h.entries, line)
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// Entries returns a copy of all recorded lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded lines.
func (h *History) Len() int { return len(h.entries) }

// At returns the i-th entry, oldest first.
func (h *History) At(i int) string { return h.entries[i] }
