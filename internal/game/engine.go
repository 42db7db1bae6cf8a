package game

// Engine is the capability a room needs from a rule set. Turn order and
// room lifecycle live in the room; an engine only knows the board.
type Engine interface {
	Kind() Kind
	// Apply validates and applies mv for seat.
	Apply(seat Seat, mv Move) (Outcome, error)
	// LegalMoves lists the moves currently offered to seat.
	LegalMoves(seat Seat) []Move
	// Over reports whether the last applied move ended the game.
	Over() bool
	// Reset restores the initial position.
	Reset()
}

// New returns a fresh engine for kind.
func New(kind Kind) (Engine, error) {
	switch kind {
	case Connect4Kind:
		return NewConnect4(), nil
	case CheckersKind:
		return NewCheckers(), nil
	}
	return nil, ErrInvalidGameType
}
