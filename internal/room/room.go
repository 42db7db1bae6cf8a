package room

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tabletop/internal/config"
	"tabletop/internal/game"
	"tabletop/internal/obslog"
	"tabletop/internal/shared"
)

// MaxPlayers is the seat count of every room.
const MaxPlayers = 2

// Slot binds a seat to a participant. Conn is nil for the bot.
type Slot struct {
	Seat     game.Seat
	Conn     Conn
	Nickname string
}

func (s *Slot) IsBot() bool { return s.Conn == nil }

// State is a point-in-time copy of a room for introspection.
type State struct {
	ID           string               `json:"room_id"`
	Kind         game.Kind            `json:"game_type"`
	Visibility   shared.Visibility    `json:"visibility"`
	Started      bool                 `json:"started"`
	Over         bool                 `json:"over"`
	Current      game.Seat            `json:"current_player"`
	Seats        map[game.Seat]string `json:"seats"`
	Bot          game.Seat            `json:"bot,omitempty"`
	RematchVotes []game.Seat          `json:"rematch_votes"`
	CreatedAt    time.Time            `json:"created_at"`
}

type Options struct {
	BotDelay         time.Duration
	BotFallbackAfter time.Duration
	Weights          config.Weights
	Names            NameSupply
	Rand             *rand.Rand
	// OnClose runs on the room goroutine once the room is destroyed.
	OnClose func(*Room)
}

// Room is one game session. All state below the inbox is owned by the
// room goroutine; other goroutines reach it through do.
type Room struct {
	ID         string
	Kind       game.Kind
	Visibility shared.Visibility
	CreatedAt  time.Time

	opts   Options
	log    *zap.Logger
	inbox  chan func()
	ctx    context.Context
	cancel context.CancelFunc

	startedFlag atomic.Bool
	closedFlag  atomic.Bool
	// claims counts held seats plus seats reserved for a pending join.
	claims atomic.Int32

	engine  game.Engine
	unused  []game.Seat
	slots   map[game.Seat]*Slot
	started bool
	over    bool
	current game.Seat
	votes   map[game.Seat]bool
	rng     *rand.Rand

	botCancel      context.CancelFunc
	fallbackCancel context.CancelFunc
}

// New creates an empty room and starts its goroutine.
func New(id string, kind game.Kind, vis shared.Visibility, opts Options) (*Room, error) {
	eng, err := game.New(kind)
	if err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Names == nil {
		opts.Names = NewNameCycle(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Room{
		ID:         id,
		Kind:       kind,
		Visibility: vis,
		CreatedAt:  time.Now(),
		opts:       opts,
		log:        obslog.L().With(zap.String("room_id", id), zap.String("game_type", string(kind))),
		inbox:      make(chan func()),
		ctx:        ctx,
		cancel:     cancel,
		engine:     eng,
		slots:      map[game.Seat]*Slot{},
		votes:      map[game.Seat]bool{},
		rng:        opts.Rand,
	}
	for s := 1; s <= MaxPlayers; s++ {
		r.unused = append(r.unused, game.Seat(s))
	}
	r.shuffleUnused()
	go r.run()
	return r, nil
}

func (r *Room) run() {
	for {
		select {
		case fn := <-r.inbox:
			fn()
		case <-r.ctx.Done():
			return
		}
	}
}

// do runs fn on the room goroutine and waits for its result.
func (r *Room) do(fn func() error) error {
	errc := make(chan error, 1)
	task := func() {
		if r.closedFlag.Load() {
			errc <- ErrRoomClosed
			return
		}
		errc <- fn()
	}
	select {
	case r.inbox <- task:
	case <-r.ctx.Done():
		return ErrRoomClosed
	}
	return <-errc
}

// Started reports whether every seat has been filled at least once.
func (r *Room) Started() bool { return r.startedFlag.Load() }

func (r *Room) Closed() bool { return r.closedFlag.Load() }

// Free is the number of seats neither held nor reserved.
func (r *Room) Free() int { return MaxPlayers - int(r.claims.Load()) }

// claim reserves a seat for a following joinClaimed. It fails once every
// seat is held or reserved.
func (r *Room) claim() bool {
	for {
		n := r.claims.Load()
		if n >= MaxPlayers {
			return false
		}
		if r.claims.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// unclaim hands back a reservation whose join failed.
func (r *Room) unclaim() { r.claims.Add(-1) }

// Join seats a participant and returns its seat number.
func (r *Room) Join(conn Conn, nickname string) (game.Seat, error) {
	return r.joinVia(conn, nickname, false)
}

// joinClaimed is Join for a seat already reserved with claim.
func (r *Room) joinClaimed(conn Conn, nickname string) (game.Seat, error) {
	return r.joinVia(conn, nickname, true)
}

func (r *Room) joinVia(conn Conn, nickname string, claimed bool) (game.Seat, error) {
	var seat game.Seat
	err := r.do(func() error {
		var err error
		seat, err = r.join(conn, nickname, claimed)
		return err
	})
	return seat, err
}

// AddBot seats the fallback opponent in a free seat.
func (r *Room) AddBot() (game.Seat, error) {
	var seat game.Seat
	err := r.do(func() error {
		var err error
		seat, err = r.addBot()
		return err
	})
	return seat, err
}

// Leave releases seat. The room closes once no human is left.
func (r *Room) Leave(seat game.Seat) error {
	return r.do(func() error {
		r.leave(seat)
		return nil
	})
}

// Move submits a move for seat.
func (r *Room) Move(seat game.Seat, mv game.Move) error {
	return r.do(func() error { return r.move(seat, mv) })
}

// Rematch records seat's vote for another game.
func (r *Room) Rematch(seat game.Seat) error {
	return r.do(func() error { return r.rematch(seat) })
}

// Help lists the legal destinations of the checkers piece at from for seat.
func (r *Room) Help(seat game.Seat, from game.Pos) ([]game.Pos, error) {
	var out []game.Pos
	err := r.do(func() error {
		ch, ok := r.engine.(*game.Checkers)
		if !ok {
			return ErrInvalidEvent
		}
		if !r.started {
			return game.ErrNotStarted
		}
		if _, ok := r.slots[seat]; !ok {
			return ErrInvalidEvent
		}
		out = ch.Destinations(seat, from)
		return nil
	})
	return out, err
}

func (r *Room) Snapshot() (State, error) {
	var st State
	err := r.do(func() error {
		st = r.snapshot()
		return nil
	})
	return st, err
}

// Close destroys the room.
func (r *Room) Close() {
	_ = r.do(func() error {
		r.close()
		return nil
	})
}

func (r *Room) snapshot() State {
	st := State{
		ID:         r.ID,
		Kind:       r.Kind,
		Visibility: r.Visibility,
		Started:    r.started,
		Over:       r.over,
		Current:    r.current,
		Seats:      make(map[game.Seat]string, len(r.slots)),
		CreatedAt:  r.CreatedAt,
	}
	for seat, s := range r.slots {
		st.Seats[seat] = s.Nickname
		if s.IsBot() {
			st.Bot = seat
		}
	}
	for seat := range r.votes {
		st.RematchVotes = append(st.RematchVotes, seat)
	}
	sort.Slice(st.RematchVotes, func(i, j int) bool { return st.RematchVotes[i] < st.RematchVotes[j] })
	return st
}

// ---- seat registry ----

func (r *Room) join(conn Conn, nickname string, claimed bool) (game.Seat, error) {
	if r.started || len(r.unused) == 0 {
		return game.NoSeat, ErrRoomFull
	}
	seat := r.unused[len(r.unused)-1]
	r.unused = r.unused[:len(r.unused)-1]
	r.slots[seat] = &Slot{Seat: seat, Conn: conn, Nickname: nickname}
	if !claimed {
		r.claims.Add(1)
	}
	if conn != nil {
		conn.Send(gin.H{"event": shared.EventConnected, "you": seat})
	}
	r.log.Info("room_join", zap.Int("seat", int(seat)), zap.String("nickname", nickname), zap.Bool("bot", conn == nil))

	if len(r.unused) == 0 {
		r.start()
	} else if conn != nil {
		r.armFallback()
	}
	return seat, nil
}

func (r *Room) addBot() (game.Seat, error) {
	for _, s := range r.slots {
		if s.IsBot() {
			return game.NoSeat, ErrInvalidEvent
		}
	}
	return r.join(nil, r.opts.Names.Next(), false)
}

func (r *Room) leave(seat game.Seat) {
	s, ok := r.slots[seat]
	if !ok {
		return
	}
	delete(r.slots, seat)
	delete(r.votes, seat)
	r.claims.Add(-1)
	r.unused = append(r.unused, seat)
	r.shuffleUnused()

	if r.started && !r.over {
		r.over = true
	}
	r.cancelBot()
	r.log.Info("room_leave", zap.Int("seat", int(seat)), zap.String("nickname", s.Nickname))
	r.broadcast(gin.H{
		"event":   shared.EventDisconnected,
		"player":  seat,
		"message": fmt.Sprintf("%s disconnected", s.Nickname),
	})

	if !r.hasHumans() {
		r.close()
	}
}

// start flips the room to started. It runs once per room: the room never
// becomes joinable again, so the identity exchange happens exactly once.
func (r *Room) start() {
	r.started = true
	r.startedFlag.Store(true)
	r.over = false
	r.votes = map[game.Seat]bool{}
	r.current = r.randomSeat()
	if r.fallbackCancel != nil {
		r.fallbackCancel()
		r.fallbackCancel = nil
	}

	msg := gin.H{"event": shared.EventStarted, "next": r.current}
	for seat, s := range r.slots {
		msg[strconv.Itoa(int(seat))] = s.Nickname
	}
	r.broadcast(msg)
	r.log.Info("room_started", zap.Int("first", int(r.current)))
	r.scheduleBot()
}

func (r *Room) hasHumans() bool {
	for _, s := range r.slots {
		if !s.IsBot() {
			return true
		}
	}
	return false
}

func (r *Room) broadcast(msg gin.H) {
	for _, seat := range r.seatOrder() {
		if c := r.slots[seat].Conn; c != nil {
			c.Send(msg)
		}
	}
}

func (r *Room) sendOthers(except game.Seat, msg gin.H) {
	for _, seat := range r.seatOrder() {
		if seat == except {
			continue
		}
		if c := r.slots[seat].Conn; c != nil {
			c.Send(msg)
		}
	}
}

func (r *Room) seatOrder() []game.Seat {
	out := make([]game.Seat, 0, len(r.slots))
	for seat := range r.slots {
		out = append(out, seat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Room) randomSeat() game.Seat {
	seats := r.seatOrder()
	if len(seats) == 0 {
		return game.NoSeat
	}
	return seats[r.rng.Intn(len(seats))]
}

func (r *Room) shuffleUnused() {
	r.rng.Shuffle(len(r.unused), func(i, j int) {
		r.unused[i], r.unused[j] = r.unused[j], r.unused[i]
	})
}

// ---- turn coordinator ----

func (r *Room) move(seat game.Seat, mv game.Move) error {
	if !r.started {
		return game.ErrNotStarted
	}
	if r.over {
		return game.ErrGameOver
	}
	if seat != r.current {
		return game.ErrInvalidTurn
	}
	out, err := r.engine.Apply(seat, mv)
	if err != nil {
		return err
	}

	if out.Winner != game.NoSeat {
		r.over = true
	} else if !out.Continue {
		r.current = seat.Other()
	}

	msg := gin.H{"event": shared.EventMove, "player": seat, "next": r.current}
	for k, v := range out.Payload() {
		msg[k] = v
	}
	r.broadcast(msg)
	r.log.Debug("room_move", zap.Int("seat", int(seat)), zap.Int("next", int(r.current)), zap.Bool("continue", out.Continue))

	if r.over {
		r.broadcast(gin.H{"event": shared.EventEnd, "player": out.Winner})
		r.log.Info("room_game_over", zap.Int("winner", int(out.Winner)))
		return nil
	}
	r.scheduleBot()
	return nil
}

func (r *Room) rematch(seat game.Seat) error {
	if _, ok := r.slots[seat]; !ok {
		return ErrInvalidEvent
	}
	if !r.started {
		return game.ErrNotStarted
	}
	if !r.over {
		return ErrGameInProgress
	}
	if len(r.slots) < MaxPlayers {
		return ErrRoomUnavailable
	}

	r.votes[seat] = true
	for s, slot := range r.slots {
		if slot.IsBot() {
			r.votes[s] = true
		}
	}
	for s := range r.slots {
		if !r.votes[s] {
			r.sendOthers(seat, gin.H{"event": shared.EventRematchVote, "player": seat})
			return nil
		}
	}

	r.engine.Reset()
	r.over = false
	r.votes = map[game.Seat]bool{}
	r.current = r.randomSeat()
	r.broadcast(gin.H{"event": shared.EventRematch, "player": r.current})
	r.log.Info("room_rematch", zap.Int("first", int(r.current)))
	r.scheduleBot()
	return nil
}

// discard stops a room that was never published, without OnClose.
func (r *Room) discard() {
	r.closedFlag.Store(true)
	r.cancel()
}

func (r *Room) close() {
	if r.closedFlag.Load() {
		return
	}
	r.closedFlag.Store(true)
	r.cancel()
	r.log.Info("room_closed")
	if r.opts.OnClose != nil {
		r.opts.OnClose(r)
	}
}
