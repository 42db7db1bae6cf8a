package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop/internal/game"
	"tabletop/internal/room"
	"tabletop/internal/shared"
)

func newRoom(t *testing.T, id string, kind game.Kind, vis shared.Visibility) *room.Room {
	t.Helper()
	r, err := room.New(id, kind, vis, room.Options{})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestMemoryStoreKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	a := newRoom(t, "a", game.Connect4Kind, shared.Public)
	b := newRoom(t, "b", game.Connect4Kind, shared.Public)
	c := newRoom(t, "c", game.Connect4Kind, shared.Public)
	for _, r := range []*room.Room{b, a, c} {
		require.NoError(t, s.Add(r))
	}

	assert.Equal(t, []*room.Room{b, a, c}, s.List(game.Connect4Kind, shared.Public))

	s.Delete(a)
	assert.Equal(t, []*room.Room{b, c}, s.List(game.Connect4Kind, shared.Public))
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStorePartitions(t *testing.T) {
	s := NewMemoryStore()
	pub := newRoom(t, "x", game.CheckersKind, shared.Public)
	require.NoError(t, s.Add(pub))

	_, ok := s.Get(game.CheckersKind, shared.Private, "x")
	assert.False(t, ok)
	_, ok = s.Get(game.Connect4Kind, shared.Public, "x")
	assert.False(t, ok)

	got, ok := s.Get(game.CheckersKind, shared.Public, "x")
	require.True(t, ok)
	assert.Same(t, pub, got)

	priv := newRoom(t, "x", game.CheckersKind, shared.Private)
	require.NoError(t, s.Add(priv))
	assert.Empty(t, s.List(game.Connect4Kind, shared.Private))
}

func TestMemoryStoreRejectsDuplicateID(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Add(newRoom(t, "dup", game.Connect4Kind, shared.Private)))
	err := s.Add(newRoom(t, "dup", game.Connect4Kind, shared.Private))
	assert.ErrorIs(t, err, room.ErrDuplicateRoomID)
}

func TestMemoryStoreDeleteIgnoresStaleRoom(t *testing.T) {
	s := NewMemoryStore()
	old := newRoom(t, "r", game.Connect4Kind, shared.Private)
	require.NoError(t, s.Add(old))
	s.Delete(old)

	fresh := newRoom(t, "r", game.Connect4Kind, shared.Private)
	require.NoError(t, s.Add(fresh))
	s.Delete(old)

	got, ok := s.Get(game.Connect4Kind, shared.Private, "r")
	require.True(t, ok)
	assert.Same(t, fresh, got)
}
