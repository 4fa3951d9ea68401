package service

import "sync"

// MembershipIndex maps a room id to its member socket ids in join order.
// A room entry exists from the first Join until the last Leave; eviction on
// last leave keeps the index free of empty rooms.
type MembershipIndex struct {
	mu    sync.RWMutex
	rooms map[string][]string
}

// NewMembershipIndex creates an empty index.
func NewMembershipIndex() *MembershipIndex {
	return &MembershipIndex{rooms: make(map[string][]string)}
}

// Join adds socketID to the room's member set. Idempotent.
func (m *MembershipIndex) Join(roomID, socketID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.rooms[roomID] {
		if id == socketID {
			return
		}
	}
	m.rooms[roomID] = append(m.rooms[roomID], socketID)
}

// Leave removes socketID from the room and reports whether the room became
// empty (and was evicted). Leaving a room never joined is a no-op.
func (m *MembershipIndex) Leave(roomID, socketID string) (emptied bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	members, ok := m.rooms[roomID]
	if !ok {
		return false
	}
	for i, id := range members {
		if id == socketID {
			m.rooms[roomID] = append(members[:i], members[i+1:]...)
			break
		}
	}
	if len(m.rooms[roomID]) == 0 {
		delete(m.rooms, roomID)
		return true
	}
	return false
}

// Members returns a copy of the room's member ids in join order.
// The copy is stable for the duration of a fan-out.
func (m *MembershipIndex) Members(roomID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	members := m.rooms[roomID]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Rooms returns the ids of all rooms with at least one member.
func (m *MembershipIndex) Rooms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		out = append(out, id)
	}
	return out
}
