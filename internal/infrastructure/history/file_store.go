// Package history archives terminal executions in a FIFO ring capped at
// max_history. Backends: SQLite (default), JSONL file (fallback when the DB
// cannot be opened) and an in-memory store for tests.
package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/pkg/filesystem"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// FileStore keeps history as a jsonl file, rewritten on append to enforce
// the FIFO cap. A corrupted or missing file reads as empty, never fatal.
type FileStore struct {
	path string
	max  int
	mu   sync.Mutex
}

// NewFileStore creates a store under ~/.cmdwatch/history/history.jsonl.
func NewFileStore(maxHistory int) *FileStore {
	return NewFileStoreAt(filepath.Join(filesystem.UserHomeDir(), ".cmdwatch", "history", "history.jsonl"), maxHistory)
}

// NewFileStoreAt creates a store backed by an explicit path.
func NewFileStoreAt(path string, maxHistory int) *FileStore {
	if maxHistory <= 0 {
		maxHistory = domain.DefaultMaxHistory
	}
	return &FileStore{path: path, max: maxHistory}
}

// Append implements ports.HistoryRepository; the oldest entries are evicted
// once the cap is reached.
func (f *FileStore) Append(entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.readAll()
	entries = append(entries, entry)
	if len(entries) > f.max {
		entries = entries[len(entries)-f.max:]
	}
	return f.writeAll(entries)
}

// All returns every archived entry, oldest first.
func (f *FileStore) All() ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readAll(), nil
}

// Recent returns the newest n entries, newest first.
func (f *FileStore) Recent(n int) ([]domain.HistoryEntry, error) {
	all, err := f.All()
	if err != nil {
		return nil, err
	}
	return lastN(all, n), nil
}

// Slow returns entries whose duration is at or above threshold, newest
// first.
func (f *FileStore) Slow(threshold time.Duration) ([]domain.HistoryEntry, error) {
	all, err := f.All()
	if err != nil {
		return nil, err
	}
	return filterSlow(all, threshold), nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) readAll() []domain.HistoryEntry {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var entries []domain.HistoryEntry
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var entry domain.HistoryEntry
		// Unreadable lines are skipped: corruption is never fatal.
		if err := json.Unmarshal(line, &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (f *FileStore) writeAll(entries []domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	return os.WriteFile(f.path, buf.Bytes(), 0o644)
}

// lastN slices the newest n entries out of an oldest-first list, returning
// them newest first.
func lastN(entries []domain.HistoryEntry, n int) []domain.HistoryEntry {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]domain.HistoryEntry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out
}

func filterSlow(entries []domain.HistoryEntry, threshold time.Duration) []domain.HistoryEntry {
	var out []domain.HistoryEntry
	for i := len(entries) - 1; i >= 0; i-- {
		if time.Duration(entries[i].DurationMS)*time.Millisecond >= threshold {
			out = append(out, entries[i])
		}
	}
	return out
}

var _ ports.HistoryRepository = (*FileStore)(nil)
