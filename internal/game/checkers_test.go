package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func man(s Seat) Piece  { return Piece{Owner: s} }
func king(s Seat) Piece { return Piece{Owner: s, King: true} }

func mv(fc, fr, tc, tr int) Move {
	return Move{From: Pos{Col: fc, Row: fr}, To: Pos{Col: tc, Row: tr}}
}

func TestCheckersInitialLayout(t *testing.T) {
	c := NewCheckers()
	for _, s := range []Seat{Seat1, Seat2} {
		pieces, kings := c.Count(s)
		assert.Equal(t, 12, pieces)
		assert.Zero(t, kings)
	}
	b := c.Board()
	assert.Equal(t, Seat1, b.At(Pos{Col: 0, Row: 0}).Owner)
	assert.Equal(t, Seat2, b.At(Pos{Col: 7, Row: 7}).Owner)
	assert.True(t, b.At(Pos{Col: 1, Row: 0}).Empty())

	// Only the front row of each side can move at the start.
	assert.Len(t, c.LegalMoves(Seat1), 7)
	assert.Len(t, c.LegalMoves(Seat2), 7)
}

func TestCheckersForcedCapture(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{2, 1}: man(Seat1),
		{6, 1}: man(Seat1),
		{3, 2}: man(Seat2),
		{7, 6}: man(Seat2),
	})
	set := c.Moves(Seat1)
	assert.Equal(t, []Step{{From: Pos{2, 1}, To: Pos{4, 3}}}, set.Captures)
	assert.Empty(t, set.Simple)

	_, err := c.Apply(Seat1, mv(6, 1, 5, 2))
	assert.ErrorIs(t, err, ErrIllegalMove)

	out, err := c.Apply(Seat1, mv(2, 1, 4, 3))
	require.NoError(t, err)
	require.NotNil(t, out.Captured)
	assert.Equal(t, Pos{3, 2}, *out.Captured)
	assert.False(t, out.Continue)
	assert.Equal(t, NoSeat, out.Winner)
	b := c.Board()
	assert.True(t, b.At(Pos{3, 2}).Empty())
	assert.Equal(t, map[string]any{
		"previous_position": Pos{2, 1},
		"next_position":     Pos{4, 3},
		"captured":          Pos{3, 2},
		"king":              false,
	}, out.Payload())
}

func TestCheckersChainCapture(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{1, 0}: man(Seat1),
		{6, 0}: man(Seat1),
		{2, 1}: man(Seat2),
		{4, 3}: man(Seat2),
		{7, 7}: man(Seat2),
	})

	out, err := c.Apply(Seat1, mv(1, 0, 3, 2))
	require.NoError(t, err)
	assert.True(t, out.Continue)
	at, seat, ok := c.Chain()
	require.True(t, ok)
	assert.Equal(t, Pos{3, 2}, at)
	assert.Equal(t, Seat1, seat)
	assert.Equal(t, []Pos{{5, 4}}, c.Destinations(Seat1, Pos{3, 2}))
	assert.Empty(t, c.Destinations(Seat1, Pos{6, 0}))

	_, err = c.Apply(Seat1, mv(6, 0, 7, 1))
	assert.ErrorIs(t, err, ErrIllegalMove)

	out, err = c.Apply(Seat1, mv(3, 2, 5, 4))
	require.NoError(t, err)
	assert.False(t, out.Continue)
	_, _, ok = c.Chain()
	assert.False(t, ok)
	pieces, _ := c.Count(Seat2)
	assert.Equal(t, 1, pieces)
}

func TestCheckersCrowningEndsTurn(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{1, 5}: man(Seat1),
		{2, 6}: man(Seat2),
		{4, 6}: man(Seat2),
	})
	out, err := c.Apply(Seat1, mv(1, 5, 3, 7))
	require.NoError(t, err)
	assert.True(t, out.King)
	// The new king could jump (4,6), but crowning ends the turn.
	assert.False(t, out.Continue)
	b := c.Board()
	assert.True(t, b.At(Pos{3, 7}).King)
	_, kings := c.Count(Seat1)
	assert.Equal(t, 1, kings)
}

func TestPromoteIsIdempotent(t *testing.T) {
	p := man(Seat2)
	p.Promote()
	p.Promote()
	assert.Equal(t, king(Seat2), p)
}

func TestCheckersDirection(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{3, 3}: man(Seat1),
		{5, 3}: king(Seat1),
		{0, 7}: man(Seat2),
	})
	assert.ElementsMatch(t, []Pos{{2, 4}, {4, 4}}, c.Destinations(Seat1, Pos{3, 3}))
	assert.ElementsMatch(t, []Pos{{4, 2}, {6, 2}, {4, 4}, {6, 4}}, c.Destinations(Seat1, Pos{5, 3}))

	_, err := c.Apply(Seat1, mv(3, 3, 2, 2))
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = c.Apply(Seat1, mv(5, 3, 6, 2))
	assert.NoError(t, err)
}

func TestCheckersLastPieceTakenWins(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{2, 1}: man(Seat1),
		{3, 2}: man(Seat2),
	})
	out, err := c.Apply(Seat1, mv(2, 1, 4, 3))
	require.NoError(t, err)
	assert.Equal(t, Seat1, out.Winner)
	assert.True(t, c.Over())
	assert.Empty(t, c.LegalMoves(Seat1))

	_, err = c.Apply(Seat2, mv(0, 0, 1, 1))
	assert.ErrorIs(t, err, ErrGameOver)

	c.Reset()
	assert.False(t, c.Over())
	pieces, _ := c.Count(Seat2)
	assert.Equal(t, 12, pieces)
}

func TestCheckersBlockedSeatLoses(t *testing.T) {
	// Seat 2's only man at (0,1) is walled in by (1,0) and the board edge.
	c := SetupCheckers(map[Pos]Piece{
		{0, 1}: man(Seat2),
		{1, 0}: man(Seat1),
		{5, 5}: man(Seat1),
	})
	assert.Zero(t, c.Moves(Seat2).Len())

	out, err := c.Apply(Seat1, mv(5, 5, 6, 6))
	require.NoError(t, err)
	assert.Equal(t, Seat1, out.Winner)
}
