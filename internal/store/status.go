package store

import (
	"sync"

	"github.com/seongmin-dev/kpx-smp-bot/internal/smp"
)

// StatusStore is a concurrency-safe in-memory record of the most recent
// pipeline run per region. Only operational metadata is kept; price tables
// and reports are never persisted across requests.
type StatusStore struct {
	mu     sync.RWMutex
	latest map[smp.Region]smp.RunStatus
}

// NewStatusStore creates an empty StatusStore.
func NewStatusStore() *StatusStore {
	return &StatusStore{
		latest: make(map[smp.Region]smp.RunStatus),
	}
}

// Record overwrites the latest run status for the status's region.
func (s *StatusStore) Record(status smp.RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[status.Region] = status
}

// Latest returns the most recent run status for a region, if any run has
// been recorded.
func (s *StatusStore) Latest(region smp.Region) (smp.RunStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.latest[region]
	return status, ok
}
