package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tabletop/internal/game"
	"tabletop/internal/obslog"
	"tabletop/internal/room"
	"tabletop/internal/shared"
)

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary List rooms
// @Description Live rooms grouped by game type, then visibility
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rm.List()})
	}
}

// @Summary Create a room
// @Description Registers a room ahead of time. With bot the fallback opponent takes a seat right away.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Room settings"
// @Success 201 {object} CreateRoomResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "game_type required"})
			return
		}
		kind, err := game.ParseKind(req.GameType)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		vis, ok := shared.ParseVisibility(req.Visibility)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "visibility must be public or private"})
			return
		}

		r, err := rm.Create(kind, vis, req.RoomID)
		switch {
		case errors.Is(err, room.ErrDuplicateRoomID):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if req.Bot {
			if _, err := r.AddBot(); err != nil {
				obslog.L().Error("create_room_add_bot_failed", zap.String("room_id", r.ID), zap.Error(err))
				rm.Remove(r)
				c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
				return
			}
		}

		c.JSON(http.StatusCreated, CreateRoomResponse{
			RoomID:     r.ID,
			GameType:   string(kind),
			Visibility: string(vis),
			WSURL:      wsURL(kind, vis, r.ID),
		})
	}
}

func wsURL(kind game.Kind, vis shared.Visibility, id string) string {
	u := "/ws/" + string(kind)
	if vis == shared.Private {
		u += "?" + url.Values{"room_id": {id}}.Encode()
	}
	return u
}

// @Summary Get a room
// @Description Snapshot of seats, turn and lifecycle flags
// @Tags Room
// @Produce json
// @Param gameType path string true "connect-4 or checkers"
// @Param roomID path string true "Room id"
// @Success 200 {object} room.State
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{gameType}/{roomID} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, err := game.ParseKind(c.Param("gameType"))
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		r, ok := rm.Get(kind, c.Param("roomID"))
		if !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		st, err := r.Snapshot()
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// @Summary Server stats
// @Tags System
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 503 {object} ErrorResponse
// @Router /stats [get]
func StatsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := rm.Connections(c.Request.Context())
		if err != nil {
			obslog.L().Warn("stats_counter_failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "connection counter unavailable"})
			return
		}
		c.JSON(http.StatusOK, StatsResponse{Connections: n, Rooms: rm.RoomCount()})
	}
}
