package game

import (
	"math"
	"math/rand"

	"tabletop/internal/config"
)

// CheckersScore plays step on a scratch copy and rates the resulting position for seat.
func CheckersScore(c *Checkers, step Step, seat Seat, w config.Weights) int {
	sim := c.Clone()
	mover := sim.board.At(step.From)
	out, err := sim.Apply(seat, Move{From: step.From, To: step.To})
	if err != nil {
		return math.MinInt / 2
	}
	switch out.Winner {
	case seat:
		return w.WWin
	case Draw:
		return 0
	}

	score := 0
	if out.Captured != nil {
		score += w.WCapture
	}
	if out.Continue {
		score += w.WChain
	}
	if out.King && !mover.King {
		score += w.WPromote
	}

	// The opponent only replies once our chain is finished.
	if !out.Continue {
		opp := seat.Other()
		oppMoves := sim.Moves(opp)
		for _, s := range oppMoves.Captures {
			score -= w.WExposed
			if s.Jumped() == out.To {
				score -= w.WExposed
			}
		}
		for _, s := range oppMoves.All() {
			if pc := sim.board.At(s.From); !pc.King && s.To.Row == PromotionRow(opp) {
				score -= w.WKingRow
			}
		}
	}

	if !out.King {
		score += w.WAdvance * (CheckersSize - 1 - abs(PromotionRow(seat)-out.To.Row))
	}
	return score
}

// ChooseCheckers ranks every offered move for seat and breaks ties randomly.
func ChooseCheckers(c *Checkers, seat Seat, w config.Weights, rng *rand.Rand) (Move, bool) {
	bestScore := math.MinInt
	var ties []Step
	for _, s := range c.Moves(seat).All() {
		sc := CheckersScore(c, s, seat, w)
		switch {
		case sc > bestScore:
			bestScore = sc
			ties = []Step{s}
		case sc == bestScore:
			ties = append(ties, s)
		}
	}
	if len(ties) == 0 {
		return Move{}, false
	}
	pick := ties[0]
	if len(ties) > 1 && rng != nil {
		pick = ties[rng.Intn(len(ties))]
	}
	return Move{From: pick.From, To: pick.To}, true
}
