package service

import "sync"

// Participant is the identity bound to a live connection.
// PeerID is empty when the client joined without a call transport.
type Participant struct {
	Username string
	PeerID   string
}

// PresenceRegistry maps socket ids to participants. Process-lifetime state,
// no persistence: clients rejoin after a restart.
type PresenceRegistry struct {
	mu      sync.RWMutex
	entries map[string]Participant
}

// NewPresenceRegistry creates an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{entries: make(map[string]Participant)}
}

// Put inserts or overwrites the participant for a socket id.
func (r *PresenceRegistry) Put(socketID, username, peerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[socketID] = Participant{Username: username, PeerID: peerID}
}

// Get returns the participant for a socket id.
func (r *PresenceRegistry) Get(socketID string) (Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[socketID]
	return p, ok
}

// Remove deletes the entry; removing an unknown id is a no-op.
func (r *PresenceRegistry) Remove(socketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, socketID)
}

// Len returns the number of registered participants.
func (r *PresenceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
