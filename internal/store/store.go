package store

import (
	"sync"

	"github.com/dharmasatrya/searchconfirm/internal/search"
)

// Memory keeps confirmed searches for the lifetime of the process.
type Memory struct {
	mu       sync.RWMutex
	searches map[string]search.SearchRecord
}

func NewMemory() *Memory {
	return &Memory{
		searches: make(map[string]search.SearchRecord),
	}
}

// Save stores a copy of rec under id. Only populated records are kept.
func (m *Memory) Save(id string, rec *search.SearchRecord) bool {
	if rec == nil || !rec.Populated() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.searches[id] = *rec
	return true
}

func (m *Memory) Get(id string) (search.SearchRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.searches[id]
	return rec, ok
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.searches)
}
