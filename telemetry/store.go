// Package telemetry holds the engine's observability surface: the
// best-genome snapshot store, CSV generation logs, and Prometheus
// metrics. None of it feeds back into simulation or evolution.
package telemetry

import (
	"sync"

	"github.com/pthm-cable/neuroarena/genome"
)

// BestGenomeStore holds the current best-trained genome snapshot,
// replaced wholesale whenever a new best is found. Safe for concurrent
// reads from an API handler while the trainer writes from another
// goroutine.
type BestGenomeStore struct {
	mu   sync.RWMutex
	best *genome.Genome
	gen  int
}

// NewBestGenomeStore creates an empty store.
func NewBestGenomeStore() *BestGenomeStore {
	return &BestGenomeStore{}
}

// Update replaces the stored snapshot if candidate beats (or there is
// no) current best. generation tags the snapshot for export.
func (s *BestGenomeStore) Update(candidate *genome.Genome, generation int) {
	if candidate == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil || candidate.Fitness > s.best.Fitness {
		s.best = candidate.Clone()
		s.gen = generation
	}
}

// Snapshot returns a deep copy of the current best, and the generation
// it was recorded in. The second return is false if nothing has been
// recorded yet.
func (s *BestGenomeStore) Snapshot() (*genome.Genome, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.best == nil {
		return nil, 0, false
	}
	return s.best.Clone(), s.gen, true
}

// Export serializes the current best genome to its wire payload.
func (s *BestGenomeStore) Export() ([]byte, error) {
	s.mu.RLock()
	best, gen := s.best, s.gen
	s.mu.RUnlock()
	if best == nil {
		return nil, nil
	}
	return genome.Export(best, gen)
}
