package store

import (
	"errors"
	"sync"
	"time"

	"github.com/THMSCMPG/AURA-MF/internal/panel"
)

var (
	// ErrNotFound is returned when no run exists for a given id.
	ErrNotFound = errors.New("no run with requested id")
)

// MemoryStore is a concurrency-safe in-memory store of completed
// simulation runs. Cross-request history lives behind this explicit,
// lock-protected bounded buffer; there is no implicit global state.
type MemoryStore struct {
	mu sync.RWMutex

	runs  map[string]panel.Run
	order []string // run ids in insertion order, oldest first

	// retention configuration
	maxRuns int           // max number of retained runs (0 = unlimited)
	maxAge  time.Duration // max age of retained runs (0 = unlimited)
}

// NewMemoryStore creates a MemoryStore with optional limits. If maxRuns
// is <= 0, it is treated as unlimited.
func NewMemoryStore(maxRuns int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		runs:    make(map[string]panel.Run),
		maxRuns: maxRuns,
		maxAge:  maxAge,
	}
}

// SaveRun stores a completed run and enforces retention.
func (s *MemoryStore) SaveRun(run panel.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; !exists {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run

	// Enforce retention by count.
	if s.maxRuns > 0 && len(s.order) > s.maxRuns {
		over := len(s.order) - s.maxRuns
		for _, id := range s.order[:over] {
			delete(s.runs, id)
		}
		s.order = s.order[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.order); i++ {
			if !s.runs[s.order[i]].CreatedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			for _, id := range s.order[:i] {
				delete(s.runs, id)
			}
			s.order = s.order[i:]
		}
	}
}

// GetRun returns the run stored under id.
func (s *MemoryStore) GetRun(id string) (panel.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return panel.Run{}, ErrNotFound
	}
	return run, nil
}

// Len reports the number of retained runs.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
