package bloomsday

import "sync"

// Synced guards a single Filter with a read/write mutex so it can be
// shared between writers. Queries take the read lock and run in parallel;
// inserts are serialised.
type Synced struct {
	mu sync.RWMutex
	f  *Filter
}

// NewSynced takes ownership of f. The caller must not use f directly
// afterwards.
func NewSynced(f *Filter) *Synced {
	return &Synced{f: f}
}

func (s *Synced) InsertHash(h uint64) {
	s.mu.Lock()
	s.f.InsertHash(h)
	s.mu.Unlock()
}

func (s *Synced) MayMatchHash(h uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.MayMatchHash(h)
}

// InsertKey hashes k outside the lock.
func (s *Synced) InsertKey(k Hashable) {
	s.InsertHash(s.f.HashKey(k))
}

func (s *Synced) MayMatchKey(k Hashable) bool {
	return s.MayMatchHash(s.f.HashKey(k))
}

func (s *Synced) InsertString(v string) { s.InsertKey(String(v)) }

func (s *Synced) MayMatchString(v string) bool { return s.MayMatchKey(String(v)) }

// Snapshot returns an independent copy of the current filter.
func (s *Synced) Snapshot() *Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Clone()
}
