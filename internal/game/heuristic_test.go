package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop/internal/config"
)

func setupConnect4(cells map[Pos]Seat) *Connect4 {
	c := NewConnect4()
	for p, s := range cells {
		c.board.Set(p, s)
	}
	return c
}

func TestBotTakesConnect4Win(t *testing.T) {
	c := setupConnect4(map[Pos]Seat{
		{3, 5}: Seat1, {3, 4}: Seat1, {3, 3}: Seat1,
		{0, 5}: Seat2, {1, 5}: Seat2, {6, 5}: Seat2,
	})
	mv, ok := ChooseConnect4(c, Seat1, config.DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 3, mv.Column)
}

func TestBotBlocksConnect4Threat(t *testing.T) {
	c := setupConnect4(map[Pos]Seat{
		{5, 5}: Seat2, {5, 4}: Seat2, {5, 3}: Seat2,
		{0, 5}: Seat1, {1, 5}: Seat1, {6, 5}: Seat1,
	})
	mv, ok := ChooseConnect4(c, Seat1, config.DefaultWeights())
	require.True(t, ok)
	assert.Equal(t, 5, mv.Column)
}

func TestBotOpensInCenter(t *testing.T) {
	mv, ok := ChooseMove(NewConnect4(), Seat1, config.DefaultWeights(), nil)
	require.True(t, ok)
	assert.Equal(t, 3, mv.Column)
}

func TestBotNoMoveWhenOver(t *testing.T) {
	c := NewConnect4()
	for i := 0; i < 4; i++ {
		_, err := c.Apply(Seat1, Move{Column: 0})
		require.NoError(t, err)
	}
	_, ok := ChooseConnect4(c, Seat2, config.DefaultWeights())
	assert.False(t, ok)
}

func TestCheckersScoreWinningCapture(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{2, 1}: man(Seat1),
		{3, 2}: man(Seat2),
	})
	w := config.DefaultWeights()
	step := Step{From: Pos{2, 1}, To: Pos{4, 3}}
	assert.Equal(t, w.WWin, CheckersScore(c, step, Seat1, w))

	// scoring works on a copy
	b := c.Board()
	assert.False(t, b.At(Pos{3, 2}).Empty())
	assert.False(t, c.Over())
}

func TestBotPrefersCrowning(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{1, 6}: man(Seat1),
		{4, 1}: man(Seat1),
		{7, 3}: man(Seat2),
	})
	mv, ok := ChooseMove(c, Seat1, config.DefaultWeights(), rand.New(rand.NewSource(1)))
	require.True(t, ok)
	assert.Equal(t, Pos{1, 6}, mv.From)
	assert.Equal(t, PromotionRow(Seat1), mv.To.Row)
}

func TestBotFollowsChain(t *testing.T) {
	c := SetupCheckers(map[Pos]Piece{
		{1, 0}: man(Seat1),
		{6, 0}: man(Seat1),
		{2, 1}: man(Seat2),
		{4, 3}: man(Seat2),
		{7, 7}: man(Seat2),
	})
	rng := rand.New(rand.NewSource(2))
	w := config.DefaultWeights()

	first, ok := ChooseMove(c, Seat1, w, rng)
	require.True(t, ok)
	assert.Equal(t, mv(1, 0, 3, 2), first)
	_, err := c.Apply(Seat1, first)
	require.NoError(t, err)

	second, ok := ChooseMove(c, Seat1, w, rng)
	require.True(t, ok)
	assert.Equal(t, mv(3, 2, 5, 4), second)
}
