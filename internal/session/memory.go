// Package session holds analysis results in process memory. Results live for
// the lifetime of the server; there is no persistence across restarts.
package session

import (
	"sync"

	"github.com/google/uuid"

	"redline/internal/domain"
)

// MemoryStore is a concurrency-safe in-memory analysis store.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[uuid.UUID]*domain.AnalysisResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[uuid.UUID]*domain.AnalysisResult)}
}

// Put stores a result, replacing any previous result with the same ID
// wholesale.
func (s *MemoryStore) Put(result *domain.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = result
}

func (s *MemoryStore) Get(id uuid.UUID) (*domain.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[id]
	return result, ok
}
