package ws

import (
	"context"

	"tabletop/internal/game"
	"tabletop/internal/room"
)

// RoomManager is the part of the room directory the hub drives.
type RoomManager interface {
	Join(kind game.Kind, roomID string, conn room.Conn, nickname string, withBot bool) (*room.Room, game.Seat, error)
	Connected(ctx context.Context)
	Disconnected(ctx context.Context)
}
