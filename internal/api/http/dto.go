package http

// CreateRoomRequest represents the payload for POST /rooms.
type CreateRoomRequest struct {
	GameType   string `json:"game_type" binding:"required" example:"connect-4"`
	Visibility string `json:"visibility" example:"private"`
	RoomID     string `json:"room_id"`
	Bot        bool   `json:"bot"`
}

// CreateRoomResponse tells the client where to connect.
type CreateRoomResponse struct {
	RoomID     string `json:"room_id"`
	GameType   string `json:"game_type"`
	Visibility string `json:"visibility"`
	WSURL      string `json:"ws_url"`
}

type StatsResponse struct {
	Connections int64 `json:"connections"`
	Rooms       int   `json:"rooms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
