package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect4DropAndColumnFull(t *testing.T) {
	c := NewConnect4()
	for i := 0; i < Connect4Rows; i++ {
		assert.False(t, c.ColumnFull(2))
		seat := Seat1
		if i%2 == 1 {
			seat = Seat2
		}
		out, err := c.Apply(seat, Move{Column: 2})
		require.NoError(t, err)
		assert.Equal(t, Connect4Rows-1-i, out.Row)
		assert.Equal(t, NoSeat, out.Winner)
	}
	assert.True(t, c.ColumnFull(2))
	assert.Equal(t, -1, c.DropRow(2))

	_, err := c.Apply(Seat1, Move{Column: 2})
	assert.ErrorIs(t, err, ErrColumnFull)
	_, err = c.Apply(Seat1, Move{Column: Connect4Cols})
	assert.ErrorIs(t, err, ErrIllegalMove)
	_, err = c.Apply(Seat(5), Move{Column: 0})
	assert.ErrorIs(t, err, ErrInvalidTurn)

	assert.Len(t, c.LegalMoves(Seat1), Connect4Cols-1)
}

func TestConnect4Wins(t *testing.T) {
	cases := map[string][]Move{
		// seat 1 plays the listed columns, seat 2 answers in column 6
		"vertical":   {{Column: 3}, {Column: 3}, {Column: 3}, {Column: 3}},
		"horizontal": {{Column: 0}, {Column: 1}, {Column: 2}, {Column: 3}},
	}
	for name, moves := range cases {
		t.Run(name, func(t *testing.T) {
			c := NewConnect4()
			var out Outcome
			for i, mv := range moves {
				var err error
				out, err = c.Apply(Seat1, mv)
				require.NoError(t, err)
				if i < len(moves)-1 {
					_, err = c.Apply(Seat2, Move{Column: 6})
					require.NoError(t, err)
				}
			}
			assert.Equal(t, Seat1, out.Winner)
			assert.True(t, c.Over())
			assert.Empty(t, c.LegalMoves(Seat2))
			_, err := c.Apply(Seat2, Move{Column: 5})
			assert.ErrorIs(t, err, ErrGameOver)
		})
	}
}

func TestConnect4DiagonalWin(t *testing.T) {
	c := NewConnect4()
	// "/" from (0,5) to (3,2)
	set := map[Pos]Seat{
		{0, 5}: Seat1,
		{1, 5}: Seat2, {1, 4}: Seat1,
		{2, 5}: Seat2, {2, 4}: Seat2, {2, 3}: Seat1,
		{3, 5}: Seat2, {3, 4}: Seat2, {3, 3}: Seat1,
	}
	for p, s := range set {
		c.board.Set(p, s)
	}
	out, err := c.Apply(Seat1, Move{Column: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Row)
	assert.Equal(t, Seat1, out.Winner)
}

func TestConnect4Draw(t *testing.T) {
	// A full board without any line of four; row 0 of column 0 is left open.
	cols := []string{"212121", "221122", "112211", "221122", "212121", "212121", "112211"}
	c := NewConnect4()
	for col, s := range cols {
		for row, ch := range s {
			if col == 0 && row == 0 {
				continue
			}
			c.board.Set(Pos{Col: col, Row: row}, Seat(ch-'0'))
		}
	}
	out, err := c.Apply(Seat2, Move{Column: 0})
	require.NoError(t, err)
	assert.Equal(t, Draw, out.Winner)
	assert.True(t, c.Full())
	assert.Equal(t, Draw, c.Winner())
}

func TestConnect4Reset(t *testing.T) {
	c := NewConnect4()
	for i := 0; i < 4; i++ {
		_, err := c.Apply(Seat1, Move{Column: 0})
		require.NoError(t, err)
	}
	require.True(t, c.Over())
	c.Reset()
	assert.False(t, c.Over())
	assert.Equal(t, NoSeat, c.Winner())
	assert.Len(t, c.LegalMoves(Seat1), Connect4Cols)
}

func TestConnect4PayloadAndClone(t *testing.T) {
	c := NewConnect4()
	out, err := c.Apply(Seat1, Move{Column: 4})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"column": 4, "row": 5}, out.Payload())

	cp := c.Clone()
	_, err = cp.Apply(Seat2, Move{Column: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, c.DropRow(4))
	assert.Equal(t, 3, cp.DropRow(4))
}
