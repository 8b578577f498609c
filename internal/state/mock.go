// internal/state/mock.go
package state

import (
	"database/sql"
	"sync"
	"time"
)

// Mock is an in-memory test double for Manager. It is safe for concurrent
// use since debounced saves call it from timer goroutines.
type Mock struct {
	mu       sync.Mutex
	settings map[string]Setting
	history  map[string][]HistoryEntry
	writes   int
	setErr   error
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{
		settings: make(map[string]Setting),
		history:  make(map[string][]HistoryEntry),
	}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetSetting(key string) (*Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[key]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	return &s, nil
}

func (m *Mock) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.recordLocked(key)
	m.settings[key] = Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	m.writes++
	return nil
}

func (m *Mock) DeleteSetting(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordLocked(key)
	delete(m.settings, key)
	m.writes++
	return nil
}

func (m *Mock) SettingHistory(key string) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.history[key]
	out := make([]HistoryEntry, len(h))
	for i := range h {
		out[i] = h[len(h)-1-i]
	}
	return out, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Mock) recordLocked(key string) {
	prev, ok := m.settings[key]
	m.history[key] = append(m.history[key], HistoryEntry{
		Key:     key,
		Value:   prev.Value,
		Existed: ok,
		SavedAt: time.Now(),
	})
}

// Test helpers

// SetError makes subsequent SetSetting calls fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// Writes returns the number of successful SetSetting/DeleteSetting calls.
func (m *Mock) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
