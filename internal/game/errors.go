package game

type staticErr string

func (e staticErr) Error() string { return string(e) }

// Rule-level errors. Each one rejects a single action and leaves state untouched.
var (
	ErrNotStarted      error = staticErr("game has not started yet")
	ErrInvalidTurn     error = staticErr("it is not your turn")
	ErrIllegalMove     error = staticErr("illegal move")
	ErrColumnFull      error = staticErr("the selected column is full")
	ErrGameOver        error = staticErr("game is over")
	ErrInvalidGameType error = staticErr("invalid game type")
)
