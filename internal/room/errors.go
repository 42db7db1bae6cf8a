package room

type staticErr string

func (e staticErr) Error() string { return string(e) }

var (
	ErrRoomFull        error = staticErr("room is full")
	ErrRoomUnavailable error = staticErr("room is unavailable")
	ErrDuplicateRoomID error = staticErr("room id already exists")
	ErrRoomClosed      error = staticErr("room is closed")
	ErrGameInProgress  error = staticErr("game is still in progress")
	ErrInvalidEvent    error = staticErr("invalid event")
)
