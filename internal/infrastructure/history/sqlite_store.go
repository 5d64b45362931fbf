package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/pkg/filesystem"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// SQLiteStore persists history in a SQLite database. When the database
// cannot be opened or initialized it degrades to the jsonl FileStore beside
// it, so history is never the reason the tool fails.
type SQLiteStore struct {
	db       *sql.DB
	max      int
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) ~/.cmdwatch/history/history.db.
func NewSQLiteStore(maxHistory int) *SQLiteStore {
	dir := filepath.Join(filesystem.UserHomeDir(), ".cmdwatch", "history")
	return NewSQLiteStoreAt(filepath.Join(dir, "history.db"), maxHistory)
}

// NewSQLiteStoreAt creates a store backed by an explicit database path.
func NewSQLiteStoreAt(path string, maxHistory int) *SQLiteStore {
	if maxHistory <= 0 {
		maxHistory = domain.DefaultMaxHistory
	}
	fallback := NewFileStoreAt(path+".jsonl", maxHistory)
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{max: maxHistory, fallback: fallback}
	}
	store := &SQLiteStore{db: db, max: maxHistory, fallback: fallback}
	if err := store.init(); err != nil {
		db.Close()
		return &SQLiteStore{max: maxHistory, fallback: fallback}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS executions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT,
		command TEXT,
		shell TEXT,
		work_dir TEXT,
		status TEXT,
		exit_code INTEGER,
		duration_ms INTEGER,
		timeout_seconds INTEGER,
		attempt INTEGER,
		parent_id TEXT,
		started_at TEXT
	);`)
	return err
}

// Append inserts a snapshot and evicts the oldest rows beyond the cap.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	if s.db == nil {
		return s.fallback.Append(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	exitCode := sql.NullInt64{}
	if entry.ExitCode != nil {
		exitCode = sql.NullInt64{Int64: int64(*entry.ExitCode), Valid: true}
	}
	_, err := s.db.Exec(`INSERT INTO executions
		(id, command, shell, work_dir, status, exit_code, duration_ms, timeout_seconds, attempt, parent_id, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Command, entry.Shell, entry.WorkDir, string(entry.Status),
		exitCode, entry.DurationMS, entry.TimeoutSeconds, entry.Attempt, entry.ParentID,
		entry.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`DELETE FROM executions WHERE seq <= (
		SELECT seq FROM executions ORDER BY seq DESC LIMIT 1 OFFSET ?)`, s.max)
	return err
}

// Recent returns the newest n entries, newest first.
func (s *SQLiteStore) Recent(n int) ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fallback.Recent(n)
	}
	return s.query("SELECT "+columns+" FROM executions ORDER BY seq DESC LIMIT ?", n)
}

// Slow returns entries at or above the duration threshold, newest first.
func (s *SQLiteStore) Slow(threshold time.Duration) ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fallback.Slow(threshold)
	}
	return s.query("SELECT "+columns+" FROM executions WHERE duration_ms >= ? ORDER BY seq DESC", threshold.Milliseconds())
}

// All returns every entry, oldest first.
func (s *SQLiteStore) All() ([]domain.HistoryEntry, error) {
	if s.db == nil {
		return s.fallback.All()
	}
	return s.query("SELECT " + columns + " FROM executions ORDER BY seq ASC")
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	_, err := s.db.Exec("DELETE FROM executions")
	return err
}

const columns = "id, command, shell, work_dir, status, exit_code, duration_ms, timeout_seconds, attempt, parent_id, started_at"

func (s *SQLiteStore) query(stmt string, args ...interface{}) ([]domain.HistoryEntry, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var status, startedAt string
		var exitCode sql.NullInt64
		if err := rows.Scan(&entry.ID, &entry.Command, &entry.Shell, &entry.WorkDir, &status,
			&exitCode, &entry.DurationMS, &entry.TimeoutSeconds, &entry.Attempt, &entry.ParentID, &startedAt); err != nil {
			return nil, err
		}
		entry.Status = domain.ExecutionStatus(status)
		if exitCode.Valid {
			code := int(exitCode.Int64)
			entry.ExitCode = &code
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			entry.StartedAt = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
