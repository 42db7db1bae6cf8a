package game

const CheckersSize = 8

// Piece is a checkers man or king. The zero value is an empty cell.
type Piece struct {
	Owner Seat `json:"owner"`
	King  bool `json:"king"`
}

func (p Piece) Empty() bool { return p.Owner == NoSeat }

// Promote crowns the piece. Crowning a king again changes nothing.
func (p *Piece) Promote() { p.King = true }

// Step is a single diagonal move or a single jump.
type Step struct {
	From Pos `json:"from"`
	To   Pos `json:"to"`
}

func (s Step) IsCapture() bool { return abs(s.To.Row-s.From.Row) == 2 }

// Jumped is the cell a capture passes over.
func (s Step) Jumped() Pos {
	return Pos{Col: (s.From.Col + s.To.Col) / 2, Row: (s.From.Row + s.To.Row) / 2}
}

// MoveSet is the move cache for one seat. When captures exist Simple is empty.
type MoveSet struct {
	Captures []Step `json:"captures"`
	Simple   []Step `json:"simple"`
}

func (m MoveSet) All() []Step {
	out := make([]Step, 0, len(m.Captures)+len(m.Simple))
	out = append(out, m.Captures...)
	return append(out, m.Simple...)
}

func (m MoveSet) Len() int { return len(m.Captures) + len(m.Simple) }

func (m MoveSet) contains(s Step) bool {
	for _, c := range m.Captures {
		if c == s {
			return true
		}
	}
	for _, c := range m.Simple {
		if c == s {
			return true
		}
	}
	return false
}

var diagonals = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// Forward is the row direction a man of seat advances in.
func Forward(seat Seat) int {
	if seat == Seat1 {
		return 1
	}
	return -1
}

// PromotionRow is the far rank for seat.
func PromotionRow(seat Seat) int {
	if seat == Seat1 {
		return CheckersSize - 1
	}
	return 0
}

// Checkers holds an 8x8 board and the per-seat move cache.
// Seat 1 starts on rows 0-2 and moves toward higher rows.
type Checkers struct {
	board Board[Piece]
	moves map[Seat]MoveSet

	// chain is the piece that must keep capturing this turn.
	chain     *Pos
	chainSeat Seat

	over   bool
	winner Seat
}

func NewCheckers() *Checkers {
	c := &Checkers{}
	c.Reset()
	return c
}

// SetupCheckers builds a game from an explicit position.
func SetupCheckers(pieces map[Pos]Piece) *Checkers {
	c := &Checkers{board: NewBoard[Piece](CheckersSize, CheckersSize)}
	for p, pc := range pieces {
		c.board.Set(p, pc)
	}
	c.recompute()
	return c
}

func (c *Checkers) Kind() Kind { return CheckersKind }

func (c *Checkers) Over() bool { return c.over }

func (c *Checkers) Winner() Seat { return c.winner }

func (c *Checkers) Board() Board[Piece] { return c.board.Clone() }

// Chain returns the piece that must continue capturing, if any.
func (c *Checkers) Chain() (Pos, Seat, bool) {
	if c.chain == nil {
		return Pos{}, NoSeat, false
	}
	return *c.chain, c.chainSeat, true
}

func (c *Checkers) Reset() {
	c.board = NewBoard[Piece](CheckersSize, CheckersSize)
	for col := 0; col < CheckersSize; col++ {
		for row := 0; row < CheckersSize; row++ {
			if (col+row)%2 != 0 {
				continue
			}
			switch {
			case row <= 2:
				c.board.Set(Pos{Col: col, Row: row}, Piece{Owner: Seat1})
			case row >= CheckersSize-3:
				c.board.Set(Pos{Col: col, Row: row}, Piece{Owner: Seat2})
			}
		}
	}
	c.chain = nil
	c.chainSeat = NoSeat
	c.over = false
	c.winner = NoSeat
	c.recompute()
}

func (c *Checkers) Clone() *Checkers {
	out := &Checkers{
		board:     c.board.Clone(),
		moves:     make(map[Seat]MoveSet, len(c.moves)),
		chainSeat: c.chainSeat,
		over:      c.over,
		winner:    c.winner,
	}
	for s, m := range c.moves {
		out.moves[s] = MoveSet{
			Captures: append([]Step(nil), m.Captures...),
			Simple:   append([]Step(nil), m.Simple...),
		}
	}
	if c.chain != nil {
		p := *c.chain
		out.chain = &p
	}
	return out
}

// Moves returns the cached move set offered to seat.
func (c *Checkers) Moves(seat Seat) MoveSet {
	if c.over {
		return MoveSet{}
	}
	return c.moves[seat]
}

func (c *Checkers) LegalMoves(seat Seat) []Move {
	steps := c.Moves(seat).All()
	out := make([]Move, 0, len(steps))
	for _, s := range steps {
		out = append(out, Move{From: s.From, To: s.To})
	}
	return out
}

// Destinations lists where the piece at from may go for seat this turn.
func (c *Checkers) Destinations(seat Seat, from Pos) []Pos {
	out := []Pos{}
	for _, s := range c.Moves(seat).All() {
		if s.From == from {
			out = append(out, s.To)
		}
	}
	return out
}

// Count returns how many pieces and kings seat has on the board.
func (c *Checkers) Count(seat Seat) (pieces, kings int) {
	for col := 0; col < c.board.Cols; col++ {
		for row := 0; row < c.board.Rows; row++ {
			pc := c.board.Cells[col][row]
			if pc.Owner != seat {
				continue
			}
			pieces++
			if pc.King {
				kings++
			}
		}
	}
	return pieces, kings
}

// Apply plays one step. A capture keeps the turn while the piece can capture
// again, except that a man crowned by the step ends its capture chain.
func (c *Checkers) Apply(seat Seat, mv Move) (Outcome, error) {
	if c.over {
		return Outcome{}, ErrGameOver
	}
	if seat != Seat1 && seat != Seat2 {
		return Outcome{}, ErrInvalidTurn
	}
	step := Step{From: mv.From, To: mv.To}
	if !c.moves[seat].contains(step) {
		return Outcome{}, ErrIllegalMove
	}

	piece := c.board.At(step.From)
	c.board.Set(step.From, Piece{})

	out := Outcome{Kind: CheckersKind, Seat: seat, From: step.From, To: step.To}
	if step.IsCapture() {
		jumped := step.Jumped()
		c.board.Set(jumped, Piece{})
		out.Captured = &jumped
	}

	crowned := false
	if !piece.King && step.To.Row == PromotionRow(seat) {
		piece.Promote()
		crowned = true
	}
	c.board.Set(step.To, piece)
	out.King = piece.King

	c.chain = nil
	c.chainSeat = NoSeat
	c.recompute()

	// A piece that was just crowned ends the turn.
	if step.IsCapture() && !crowned {
		if further := c.capturesFrom(step.To, piece); len(further) > 0 {
			to := step.To
			c.chain = &to
			c.chainSeat = seat
			c.moves[seat] = MoveSet{Captures: further}
			out.Continue = true
		}
	}

	n1, n2 := c.moves[Seat1].Len(), c.moves[Seat2].Len()
	switch {
	case n1 == 0 && n2 == 0:
		out.Winner = Draw
	case n1 == 0:
		out.Winner = Seat2
	case n2 == 0:
		out.Winner = Seat1
	}
	if out.Winner != NoSeat {
		c.over = true
		c.winner = out.Winner
		out.Continue = false
	}
	return out, nil
}

// recompute rebuilds the move cache for both seats from the whole board.
func (c *Checkers) recompute() {
	c.moves = map[Seat]MoveSet{
		Seat1: c.generate(Seat1),
		Seat2: c.generate(Seat2),
	}
}

func (c *Checkers) generate(seat Seat) MoveSet {
	var set MoveSet
	for col := 0; col < c.board.Cols; col++ {
		for row := 0; row < c.board.Rows; row++ {
			p := Pos{Col: col, Row: row}
			pc := c.board.At(p)
			if pc.Owner != seat {
				continue
			}
			set.Captures = append(set.Captures, c.capturesFrom(p, pc)...)
			set.Simple = append(set.Simple, c.simpleFrom(p, pc)...)
		}
	}
	if len(set.Captures) > 0 {
		set.Simple = nil
	}
	return set
}

func (c *Checkers) allowed(pc Piece, dr int) bool {
	return pc.King || dr == Forward(pc.Owner)
}

func (c *Checkers) simpleFrom(p Pos, pc Piece) []Step {
	var out []Step
	for _, d := range diagonals {
		if !c.allowed(pc, d[1]) {
			continue
		}
		to := p.Add(d[0], d[1])
		if c.board.In(to) && c.board.At(to).Empty() {
			out = append(out, Step{From: p, To: to})
		}
	}
	return out
}

func (c *Checkers) capturesFrom(p Pos, pc Piece) []Step {
	var out []Step
	for _, d := range diagonals {
		if !c.allowed(pc, d[1]) {
			continue
		}
		mid := p.Add(d[0], d[1])
		to := p.Add(2*d[0], 2*d[1])
		if !c.board.In(to) || !c.board.At(to).Empty() {
			continue
		}
		if c.board.At(mid).Owner == pc.Owner.Other() {
			out = append(out, Step{From: p, To: to})
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
