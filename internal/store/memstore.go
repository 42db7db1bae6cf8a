package store

import (
	"sync"

	"tabletop/internal/game"
	"tabletop/internal/room"
	"tabletop/internal/shared"
)

type partition struct {
	kind game.Kind
	vis  shared.Visibility
}

// MemoryStore holds rooms in process memory. Insertion order is kept per
// partition so public matchmaking fills the oldest waiting room first.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[partition]map[string]*room.Room
	order map[partition][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[partition]map[string]*room.Room{},
		order: map[partition][]string{},
	}
}

func (m *MemoryStore) Get(kind game.Kind, vis shared.Visibility, id string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[partition{kind, vis}][id]
	return r, ok
}

func (m *MemoryStore) Add(r *room.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := partition{r.Kind, r.Visibility}
	if _, ok := m.rooms[p][r.ID]; ok {
		return room.ErrDuplicateRoomID
	}
	if m.rooms[p] == nil {
		m.rooms[p] = map[string]*room.Room{}
	}
	m.rooms[p][r.ID] = r
	m.order[p] = append(m.order[p], r.ID)
	return nil
}

func (m *MemoryStore) Delete(r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := partition{r.Kind, r.Visibility}
	if cur, ok := m.rooms[p][r.ID]; !ok || cur != r {
		return
	}
	delete(m.rooms[p], r.ID)
	ids := m.order[p]
	for i, id := range ids {
		if id == r.ID {
			m.order[p] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func (m *MemoryStore) List(kind game.Kind, vis shared.Visibility) []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := partition{kind, vis}
	out := make([]*room.Room, 0, len(m.order[p]))
	for _, id := range m.order[p] {
		out = append(out, m.rooms[p][id])
	}
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, rooms := range m.rooms {
		n += len(rooms)
	}
	return n
}
