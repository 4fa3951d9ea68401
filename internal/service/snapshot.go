package service

import "sync"

// SnapshotStore keeps the latest code per room, last-writer-wins.
// A room has no snapshot until its first accepted CODE_CHANGE or SYNC_CODE.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]string
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]string)}
}

// Set overwrites the room's snapshot unconditionally.
func (s *SnapshotStore) Set(roomID, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[roomID] = code
}

// Get returns the stored snapshot, or false when none was ever written.
func (s *SnapshotStore) Get(roomID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.snapshots[roomID]
	return code, ok
}

// Evict drops the room's snapshot. Called when the room's last member leaves.
func (s *SnapshotStore) Evict(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, roomID)
}
