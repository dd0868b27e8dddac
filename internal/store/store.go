package store

import (
	"sync"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

// Store holds the published snapshot for each dataset. Snapshots are
// immutable once published; readers always see either the previous complete
// snapshot or the new one, never a partially loaded table
type Store struct {
	mu        sync.RWMutex
	snapshots map[models.DatasetKind]*models.Snapshot
}

// New creates an empty store
func New() *Store {
	return &Store{
		snapshots: make(map[models.DatasetKind]*models.Snapshot),
	}
}

// Publish replaces the snapshot for its dataset. Callers only publish fully
// loaded snapshots; a failed load never reaches this point
func (s *Store) Publish(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.Dataset] = snap
}

// Current returns the published snapshot for a dataset, if any
func (s *Store) Current(dataset models.DatasetKind) (*models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[dataset]
	return snap, ok
}
