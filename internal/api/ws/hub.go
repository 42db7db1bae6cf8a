package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tabletop/internal/game"
	"tabletop/internal/obslog"
	"tabletop/internal/room"
	"tabletop/internal/shared"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 120 * time.Second
	pingPeriod  = 30 * time.Second
	sendBuffer  = 64
	maxReadSize = 4096
)

const defaultNickname = "Anonymous"

type Hub struct {
	rooms    RoomManager
	upgrader websocket.Upgrader
}

// NewHub accepts browser connections from allowedOrigins only. An empty
// list, or a "*" entry, allows every origin.
func NewHub(rooms RoomManager, allowedOrigins []string) *Hub {
	allowed := map[string]bool{}
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return &Hub{
		rooms: rooms,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

// HandleWS godoc
// @Summary Join a game room
// @Description Upgrades to a WebSocket and seats the caller. Without room_id the caller is matched into a public room.
// @Tags Game
// @Param gameType path string true "connect-4 or checkers"
// @Param nickname query string false "Display name"
// @Param room_id query string false "Private room id"
// @Param bot query bool false "Play against the bot"
// @Router /ws/{gameType} [get]
func (h *Hub) HandleWS(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		obslog.L().Warn("ws_upgrade_failed", zap.Error(err))
		return
	}

	kind, err := game.ParseKind(c.Param("gameType"))
	if err != nil {
		reject(ws, websocket.ClosePolicyViolation, "Invalid game-type")
		return
	}
	nickname := strings.TrimSpace(c.Query("nickname"))
	if nickname == "" {
		nickname = defaultNickname
	}
	withBot, _ := strconv.ParseBool(c.Query("bot"))

	cl := newClient(ws)
	rm, seat, err := h.rooms.Join(kind, c.Query("room_id"), cl, nickname, withBot)
	if err != nil {
		code := websocket.CloseTryAgainLater
		if errors.Is(err, game.ErrInvalidGameType) {
			code = websocket.ClosePolicyViolation
		}
		reject(ws, code, err.Error())
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	h.rooms.Connected(ctx)
	defer h.rooms.Disconnected(ctx)

	log := cl.log.With(zap.String("room_id", rm.ID), zap.Int("seat", int(seat)))
	log.Info("ws_joined", zap.String("nickname", nickname))

	go cl.writePump()
	cl.readPump(rm, seat)

	if err := rm.Leave(seat); err != nil && !errors.Is(err, room.ErrRoomClosed) {
		log.Warn("ws_leave_failed", zap.Error(err))
	}
	cl.close()
	log.Info("ws_left")
}

func reject(ws *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = ws.Close()
}

// client is one WebSocket participant. Rooms write to it through Send;
// writePump is the only goroutine writing to ws after the join.
type client struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
	log  *zap.Logger
}

func newClient(ws *websocket.Conn) *client {
	id := uuid.NewString()
	return &client{
		id:   id,
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
		log:  obslog.L().With(zap.String("conn_id", id)),
	}
}

func (c *client) ID() string { return c.id }

// Send queues msg. A client that cannot keep up is disconnected rather
// than allowed to stall its room.
func (c *client) Send(msg gin.H) {
	b, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("ws_encode_failed", zap.Error(err))
		return
	}
	select {
	case <-c.done:
	case c.send <- b:
	default:
		c.log.Warn("ws_send_buffer_full")
		c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

func (c *client) sendError(err error) {
	c.Send(gin.H{"event": shared.EventError, "message": err.Error()})
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Debug("ws_write_failed", zap.Error(err))
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			// flush what the room already queued, then say goodbye
			for {
				select {
				case msg := <-c.send:
					_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
					if c.ws.WriteMessage(websocket.TextMessage, msg) != nil {
						return
					}
				default:
					_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

func (c *client) readPump(rm *room.Room, seat game.Seat) {
	c.ws.SetReadLimit(maxReadSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Info("ws_read_failed", zap.Error(err))
			}
			return
		}
		var in shared.Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			c.sendError(room.ErrInvalidEvent)
			continue
		}
		if err := c.dispatch(rm, seat, in); err != nil {
			c.log.Debug("ws_action_rejected", zap.String("event", in.Event), zap.Error(err))
			c.sendError(err)
		}
	}
}

func (c *client) dispatch(rm *room.Room, seat game.Seat, in shared.Inbound) error {
	switch in.Event {
	case shared.EventMove:
		mv, ok := moveFrom(rm.Kind, in)
		if !ok {
			return room.ErrInvalidEvent
		}
		return rm.Move(seat, mv)
	case shared.EventRematch:
		return rm.Rematch(seat)
	case shared.EventHelp:
		if in.CurrentPosition == nil {
			return room.ErrInvalidEvent
		}
		dests, err := rm.Help(seat, *in.CurrentPosition)
		if err != nil {
			return err
		}
		c.Send(gin.H{"event": shared.EventHelp, "current_position": *in.CurrentPosition, "positions": dests})
		return nil
	}
	return room.ErrInvalidEvent
}

func moveFrom(kind game.Kind, in shared.Inbound) (game.Move, bool) {
	switch kind {
	case game.Connect4Kind:
		if in.Column == nil {
			return game.Move{}, false
		}
		return game.Move{Column: *in.Column}, true
	case game.CheckersKind:
		if in.CurrentPosition == nil || in.NextPosition == nil {
			return game.Move{}, false
		}
		return game.Move{From: *in.CurrentPosition, To: *in.NextPosition}, true
	}
	return game.Move{}, false
}
