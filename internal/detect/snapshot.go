package detect

import "sync"

// SnapshotStore is a last-writer-wins cell holding the most recent detection
// set. Intermediate snapshots between two reads may be lost; only the freshest
// detection state matters for live aggregation.
type SnapshotStore struct {
	mu   sync.Mutex
	dets []Detection
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Replace atomically overwrites the stored snapshot. The caller's slice is
// copied so the producer can keep reusing its working memory.
func (s *SnapshotStore) Replace(dets []Detection) {
	copied := make([]Detection, len(dets))
	copy(copied, dets)

	s.mu.Lock()
	s.dets = copied
	s.mu.Unlock()
}

// ReadCopy atomically returns an independent copy of the current snapshot.
func (s *SnapshotStore) ReadCopy() []Detection {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]Detection, len(s.dets))
	copy(copied, s.dets)
	return copied
}

// Len returns the size of the current snapshot.
func (s *SnapshotStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dets)
}
