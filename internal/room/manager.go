package room

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tabletop/internal/config"
	"tabletop/internal/game"
	"tabletop/internal/obslog"
	"tabletop/internal/shared"
	"tabletop/internal/stats"
)

// Store keeps live rooms partitioned by game type and visibility.
type Store interface {
	Get(kind game.Kind, vis shared.Visibility, id string) (*Room, bool)
	// Add fails with ErrDuplicateRoomID if the partition already holds id.
	Add(r *Room) error
	// Delete removes r if it is still the room stored under its id.
	Delete(r *Room)
	// List returns the rooms of one partition in creation order.
	List(kind game.Kind, vis shared.Visibility) []*Room
	Len() int
}

// joinAttempts bounds matchmaking retries when the room found fills up
// or closes before the join lands. Public retries go to a fresh room.
const joinAttempts = 3

// Manager is the room directory. It never waits on a room goroutine while
// holding mu; rooms call back into remove from their own goroutine.
type Manager struct {
	mu      sync.Mutex
	store   Store
	cfg     config.Config
	counter stats.Counter
	names   NameSupply
	// codes draws private share codes; guarded by mu.
	codes *rand.Rand
}

func NewManager(s Store, cfg config.Config, counter stats.Counter) *Manager {
	if counter == nil {
		counter = stats.NewMemory()
	}
	return &Manager{
		store:   s,
		cfg:     cfg,
		counter: counter,
		names:   NewNameCycle(cfg.BotNames),
		codes:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create registers a new room. An empty id is replaced by a generated one.
func (m *Manager) Create(kind game.Kind, vis shared.Visibility, id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(kind, vis, id)
}

// Find returns a room to join. Without an id it picks the oldest public room
// still waiting for players, creating one if none is. With an id it looks up
// the private room, creating it if missing.
func (m *Manager) Find(kind game.Kind, id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		if r := m.waiting(kind); r != nil {
			return r, nil
		}
		return m.create(kind, shared.Public, "")
	}

	if r, ok := m.store.Get(kind, shared.Private, id); ok {
		if r.Closed() {
			m.store.Delete(r)
		} else if r.Started() {
			return nil, ErrRoomUnavailable
		} else {
			return r, nil
		}
	}
	return m.create(kind, shared.Private, id)
}

// Join finds a room and seats conn in it. With withBot the bot takes the
// other seat; without an id that means a fresh private room.
func (m *Manager) Join(kind game.Kind, id string, conn Conn, nickname string, withBot bool) (*Room, game.Seat, error) {
	if withBot && id == "" {
		r, err := m.Create(kind, shared.Private, "")
		if err != nil {
			return nil, game.NoSeat, err
		}
		seat, err := r.Join(conn, nickname)
		if err != nil {
			r.Close()
			return nil, game.NoSeat, err
		}
		if _, err := r.AddBot(); err != nil {
			r.Close()
			return nil, game.NoSeat, err
		}
		return r, seat, nil
	}

	for attempt := 0; attempt < joinAttempts; attempt++ {
		var (
			r    *Room
			seat game.Seat
			err  error
		)
		if id == "" {
			if r, err = m.reserve(kind, attempt > 0); err != nil {
				return nil, game.NoSeat, err
			}
			if seat, err = r.joinClaimed(conn, nickname); err != nil {
				r.unclaim()
			}
		} else {
			if r, err = m.Find(kind, id); err != nil {
				return nil, game.NoSeat, err
			}
			seat, err = r.Join(conn, nickname)
		}
		switch {
		case err == nil:
			if withBot {
				if _, err := r.AddBot(); err != nil && !errors.Is(err, ErrRoomFull) {
					obslog.L().Warn("add_bot_failed", zap.String("room_id", r.ID), zap.Error(err))
				}
			}
			return r, seat, nil
		case errors.Is(err, ErrRoomFull), errors.Is(err, ErrRoomClosed):
			if id != "" {
				return nil, game.NoSeat, ErrRoomUnavailable
			}
		default:
			return nil, game.NoSeat, err
		}
	}
	return nil, game.NoSeat, ErrRoomUnavailable
}

// Get looks a room up by id in either visibility.
func (m *Manager) Get(kind game.Kind, id string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(kind, id)
}

// Listing groups live rooms by game type, then visibility.
type Listing map[game.Kind]map[shared.Visibility][]State

func (m *Manager) List() Listing {
	type part struct {
		kind  game.Kind
		vis   shared.Visibility
		rooms []*Room
	}
	m.mu.Lock()
	var parts []part
	for _, kind := range game.Kinds {
		for _, vis := range []shared.Visibility{shared.Public, shared.Private} {
			parts = append(parts, part{kind, vis, m.store.List(kind, vis)})
		}
	}
	m.mu.Unlock()

	out := Listing{}
	for _, p := range parts {
		if out[p.kind] == nil {
			out[p.kind] = map[shared.Visibility][]State{}
		}
		states := []State{}
		for _, r := range p.rooms {
			if st, err := r.Snapshot(); err == nil {
				states = append(states, st)
			}
		}
		out[p.kind][p.vis] = states
	}
	return out
}

// Remove destroys r and drops it from the directory.
func (m *Manager) Remove(r *Room) {
	r.Close()
	m.remove(r)
}

func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Len()
}

func (m *Manager) Weights() config.Weights { return m.cfg.Weights }

// Connected records a new live connection. Counter failures are logged only.
func (m *Manager) Connected(ctx context.Context) {
	if _, err := m.counter.Incr(ctx); err != nil {
		obslog.L().Warn("connection_counter_incr_failed", zap.Error(err))
	}
}

func (m *Manager) Disconnected(ctx context.Context) {
	if _, err := m.counter.Decr(ctx); err != nil {
		obslog.L().Warn("connection_counter_decr_failed", zap.Error(err))
	}
}

func (m *Manager) Connections(ctx context.Context) (int64, error) {
	return m.counter.Get(ctx)
}

// Shutdown closes every live room.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	var rooms []*Room
	for _, kind := range game.Kinds {
		rooms = append(rooms, m.store.List(kind, shared.Public)...)
		rooms = append(rooms, m.store.List(kind, shared.Private)...)
	}
	m.mu.Unlock()
	for _, r := range rooms {
		r.Close()
	}
}

// waiting returns the oldest public room with a seat that is neither held
// nor reserved. Callers hold mu.
func (m *Manager) waiting(kind game.Kind) *Room {
	for _, r := range m.store.List(kind, shared.Public) {
		if !r.Started() && !r.Closed() && r.Free() > 0 {
			return r
		}
	}
	return nil
}

// reserve claims a seat in a public room for the caller's joinClaimed.
// Two callers never hold a claim on the same seat. With fresh it opens a
// new room.
func (m *Manager) reserve(kind game.Kind, fresh bool) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !fresh {
		for _, r := range m.store.List(kind, shared.Public) {
			if !r.Started() && !r.Closed() && r.claim() {
				return r, nil
			}
		}
	}
	r, err := m.create(kind, shared.Public, "")
	if err != nil {
		return nil, err
	}
	r.claim()
	return r, nil
}

func (m *Manager) create(kind game.Kind, vis shared.Visibility, id string) (*Room, error) {
	if _, err := game.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if id == "" {
		id = m.generateID(kind, vis)
	} else if old, taken := m.lookup(kind, id); taken {
		if !old.Closed() {
			return nil, ErrDuplicateRoomID
		}
		m.store.Delete(old)
	}

	r, err := New(id, kind, vis, Options{
		BotDelay:         m.cfg.BotDelay,
		BotFallbackAfter: m.cfg.BotFallbackAfter,
		Weights:          m.cfg.Weights,
		Names:            m.names,
		OnClose:          m.remove,
	})
	if err != nil {
		return nil, err
	}
	if err := m.store.Add(r); err != nil {
		r.discard()
		return nil, err
	}
	obslog.L().Info("room_created", zap.String("room_id", id), zap.String("game_type", string(kind)), zap.String("visibility", string(vis)))
	return r, nil
}

func (m *Manager) remove(r *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Delete(r)
}

func (m *Manager) lookup(kind game.Kind, id string) (*Room, bool) {
	if r, ok := m.store.Get(kind, shared.Public, id); ok {
		return r, true
	}
	return m.store.Get(kind, shared.Private, id)
}

// generateID returns uuids for public rooms and short shareable codes for
// private ones.
func (m *Manager) generateID(kind game.Kind, vis shared.Visibility) string {
	for {
		var id string
		if vis == shared.Public {
			id = uuid.NewString()
		} else {
			id = m.randCode(6)
		}
		if _, taken := m.lookup(kind, id); !taken {
			return id
		}
	}
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// randCode draws a share code. Callers hold mu.
func (m *Manager) randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[m.codes.Intn(len(letters))]
	}
	return string(b)
}
