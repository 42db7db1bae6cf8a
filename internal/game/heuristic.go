package game

import (
	"math"
	"math/rand"

	"tabletop/internal/config"
)

// Connect4Score rates dropping a disc for seat in col. col must not be full.
func Connect4Score(c *Connect4, col int, seat Seat, w config.Weights) int {
	row := c.DropRow(col)
	p := Pos{Col: col, Row: row}
	opp := seat.Other()

	// Immediate win
	if IsWinningAfter(&c.board, p, seat) {
		return w.WWin
	}
	// Opponent would complete a line here next turn
	if IsWinningAfter(&c.board, p, opp) {
		return w.WBlock
	}

	sim := c.board.Clone()
	sim.Set(p, seat)

	score := w.WBuild * LineLength(&sim, p, seat)
	score -= w.WOppLine * LongestLine(&sim, opp)

	// Don't hand the opponent the cell on top
	if row > 0 && IsWinningAfter(&sim, Pos{Col: col, Row: row - 1}, opp) {
		score -= w.WGift
	}

	center := c.board.Cols / 2
	score += w.WCenter * (center - abs(col-center))
	if col == 0 || col == c.board.Cols-1 {
		score -= w.WCorner
	}
	return score
}

// ChooseConnect4 picks the best column for seat. Equal scores go to the
// columns nearest the center; a left/right tie alternates with the
// number of discs already played.
func ChooseConnect4(c *Connect4, seat Seat, w config.Weights) (Move, bool) {
	bestScore := math.MinInt
	var ties []int
	for _, mv := range c.LegalMoves(seat) {
		s := Connect4Score(c, mv.Column, seat, w)
		switch {
		case s > bestScore:
			bestScore = s
			ties = []int{mv.Column}
		case s == bestScore:
			ties = append(ties, mv.Column)
		}
	}
	if len(ties) == 0 {
		return Move{}, false
	}

	center := c.board.Cols / 2
	var nearest []int
	bestDist := math.MaxInt
	for _, col := range ties {
		d := abs(col - center)
		switch {
		case d < bestDist:
			bestDist = d
			nearest = []int{col}
		case d == bestDist:
			nearest = append(nearest, col)
		}
	}
	if len(nearest) == 1 || c.discs()%2 == 0 {
		return Move{Column: nearest[0]}, true
	}
	return Move{Column: nearest[len(nearest)-1]}, true
}

func (c *Connect4) discs() int {
	n := 0
	for col := 0; col < c.board.Cols; col++ {
		for row := 0; row < c.board.Rows; row++ {
			if c.board.Cells[col][row] != NoSeat {
				n++
			}
		}
	}
	return n
}

// ChooseMove asks the heuristic for seat's next move on any supported engine.
func ChooseMove(e Engine, seat Seat, w config.Weights, rng *rand.Rand) (Move, bool) {
	switch g := e.(type) {
	case *Connect4:
		return ChooseConnect4(g, seat, w)
	case *Checkers:
		return ChooseCheckers(g, seat, w, rng)
	}
	return Move{}, false
}
