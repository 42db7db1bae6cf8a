package shared

import "tabletop/internal/game"

// Event names carried in the "event" field of every message.
const (
	EventConnected    = "connected"
	EventStarted      = "started"
	EventMove         = "move"
	EventEnd          = "end"
	EventRematch      = "rematch"
	EventRematchVote  = "rematch_vote"
	EventHelp         = "help"
	EventError        = "error"
	EventDisconnected = "disconnected"
)

// Inbound is a client action. Game-specific fields are nil when absent.
type Inbound struct {
	Event           string    `json:"event"`
	Column          *int      `json:"column,omitempty"`
	CurrentPosition *game.Pos `json:"current_position,omitempty"`
	NextPosition    *game.Pos `json:"next_position,omitempty"`
}

// Visibility partitions rooms in the directory.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

func ParseVisibility(s string) (Visibility, bool) {
	switch Visibility(s) {
	case Public, "":
		return Public, true
	case Private:
		return Private, true
	}
	return "", false
}
