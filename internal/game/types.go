package game

import (
	"encoding/json"
	"fmt"
)

// Seat is a player slot in a room. Zero means "nobody".
type Seat int

const (
	NoSeat Seat = 0
	Seat1  Seat = 1
	Seat2  Seat = 2
	// Draw is the winner code reported when a game ends without a winner.
	Draw Seat = 3
)

// Other returns the opposing seat of a two-player game.
func (s Seat) Other() Seat {
	if s == Seat1 {
		return Seat2
	}
	return Seat1
}

// Kind identifies a rule set.
type Kind string

const (
	Connect4Kind Kind = "connect-4"
	CheckersKind Kind = "checkers"
)

// Kinds lists every supported game type.
var Kinds = []Kind{Connect4Kind, CheckersKind}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGameType, s)
}

// Pos addresses a board cell. It travels on the wire as [col, row].
type Pos struct {
	Col int
	Row int
}

func (p Pos) Add(dc, dr int) Pos { return Pos{Col: p.Col + dc, Row: p.Row + dr} }

func (p Pos) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.Col, p.Row})
}

func (p *Pos) UnmarshalJSON(b []byte) error {
	var xy [2]int
	if err := json.Unmarshal(b, &xy); err != nil {
		return err
	}
	p.Col, p.Row = xy[0], xy[1]
	return nil
}

// Board is a fixed-size grid indexed [col][row]. Row 0 is the top.
type Board[C any] struct {
	Cols  int   `json:"cols"`
	Rows  int   `json:"rows"`
	Cells [][]C `json:"cells"`
}

func NewBoard[C any](cols, rows int) Board[C] {
	c := make([][]C, cols)
	for i := range c {
		c[i] = make([]C, rows)
	}
	return Board[C]{Cols: cols, Rows: rows, Cells: c}
}

func (b *Board[C]) In(p Pos) bool {
	return p.Col >= 0 && p.Col < b.Cols && p.Row >= 0 && p.Row < b.Rows
}

func (b *Board[C]) At(p Pos) C { return b.Cells[p.Col][p.Row] }

func (b *Board[C]) Set(p Pos, v C) { b.Cells[p.Col][p.Row] = v }

// Clone deep-copies the grid. Cells are values so no aliasing survives.
func (b *Board[C]) Clone() Board[C] {
	out := NewBoard[C](b.Cols, b.Rows)
	for i := range b.Cells {
		copy(out.Cells[i], b.Cells[i])
	}
	return out
}

// Move is a game-agnostic move request. Connect-4 reads Column,
// Checkers reads From and To.
type Move struct {
	Column int `json:"column"`
	From   Pos `json:"current_position"`
	To     Pos `json:"next_position"`
}

// Outcome describes an applied move for broadcast and for the turn coordinator.
type Outcome struct {
	Kind Kind
	Seat Seat

	// Connect-4
	Column int
	Row    int

	// Checkers
	From     Pos
	To       Pos
	Captured *Pos
	King     bool

	// Winner is NoSeat while the game goes on, a seat number, or Draw.
	Winner Seat
	// Continue is set when the same seat must move again (chain capture).
	Continue bool
}

// Payload renders the game-specific move summary fields.
func (o Outcome) Payload() map[string]any {
	if o.Kind == CheckersKind {
		var captured any
		if o.Captured != nil {
			captured = *o.Captured
		}
		return map[string]any{
			"previous_position": o.From,
			"next_position":     o.To,
			"captured":          captured,
			"king":              o.King,
		}
	}
	return map[string]any{
		"column": o.Column,
		"row":    o.Row,
	}
}
