package history

import (
	"sync"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// MemoryStore is the in-memory HistoryRepository used by tests.
type MemoryStore struct {
	max     int
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

// NewMemoryStore builds an empty store capped at maxHistory.
func NewMemoryStore(maxHistory int) *MemoryStore {
	if maxHistory <= 0 {
		maxHistory = domain.DefaultMaxHistory
	}
	return &MemoryStore{max: maxHistory}
}

func (m *MemoryStore) Append(entry domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	if len(m.entries) > m.max {
		m.entries = m.entries[len(m.entries)-m.max:]
	}
	return nil
}

func (m *MemoryStore) All() ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.HistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryStore) Recent(n int) ([]domain.HistoryEntry, error) {
	all, _ := m.All()
	return lastN(all, n), nil
}

func (m *MemoryStore) Slow(threshold time.Duration) ([]domain.HistoryEntry, error) {
	all, _ := m.All()
	return filterSlow(all, threshold), nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

var _ ports.HistoryRepository = (*MemoryStore)(nil)
