package game

const (
	Connect4Cols = 7
	Connect4Rows = 6
	WinLength    = 4
)

// Connect4 is a 7x6 gravity-drop board. Cells hold the owning seat.
type Connect4 struct {
	board  Board[Seat]
	over   bool
	winner Seat
}

func NewConnect4() *Connect4 {
	return &Connect4{board: NewBoard[Seat](Connect4Cols, Connect4Rows)}
}

func (c *Connect4) Kind() Kind { return Connect4Kind }

func (c *Connect4) Over() bool { return c.over }

func (c *Connect4) Winner() Seat { return c.winner }

// Board returns a copy of the grid.
func (c *Connect4) Board() Board[Seat] { return c.board.Clone() }

func (c *Connect4) Clone() *Connect4 {
	return &Connect4{board: c.board.Clone(), over: c.over, winner: c.winner}
}

func (c *Connect4) Reset() {
	c.board = NewBoard[Seat](Connect4Cols, Connect4Rows)
	c.over = false
	c.winner = NoSeat
}

// ColumnFull reports whether the top cell of col is taken.
func (c *Connect4) ColumnFull(col int) bool {
	return c.board.At(Pos{Col: col, Row: 0}) != NoSeat
}

// DropRow returns the row a disc dropped in col would land on, or -1.
func (c *Connect4) DropRow(col int) int {
	for r := c.board.Rows - 1; r >= 0; r-- {
		if c.board.At(Pos{Col: col, Row: r}) == NoSeat {
			return r
		}
	}
	return -1
}

// Full reports whether every column is full.
func (c *Connect4) Full() bool {
	for col := 0; col < c.board.Cols; col++ {
		if !c.ColumnFull(col) {
			return false
		}
	}
	return true
}

func (c *Connect4) Apply(seat Seat, mv Move) (Outcome, error) {
	if c.over {
		return Outcome{}, ErrGameOver
	}
	if seat != Seat1 && seat != Seat2 {
		return Outcome{}, ErrInvalidTurn
	}
	col := mv.Column
	if col < 0 || col >= c.board.Cols {
		return Outcome{}, ErrIllegalMove
	}
	if c.ColumnFull(col) {
		return Outcome{}, ErrColumnFull
	}

	row := c.DropRow(col)
	p := Pos{Col: col, Row: row}
	c.board.Set(p, seat)

	out := Outcome{Kind: Connect4Kind, Seat: seat, Column: col, Row: row}
	switch {
	case IsWinningAfter(&c.board, p, seat):
		out.Winner = seat
	case c.Full():
		out.Winner = Draw
	}
	if out.Winner != NoSeat {
		c.over = true
		c.winner = out.Winner
	}
	return out, nil
}

// LegalMoves lists every column that still has room.
func (c *Connect4) LegalMoves(seat Seat) []Move {
	if c.over {
		return nil
	}
	var moves []Move
	for col := 0; col < c.board.Cols; col++ {
		if !c.ColumnFull(col) {
			moves = append(moves, Move{Column: col})
		}
	}
	return moves
}
