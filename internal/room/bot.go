package room

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tabletop/internal/game"
	"tabletop/internal/shared"
)

// NameSupply hands out display names for bot opponents.
type NameSupply interface {
	Next() string
}

// NameCycle returns its names round-robin. Safe for concurrent use.
type NameCycle struct {
	mu    sync.Mutex
	names []string
	next  int
}

func NewNameCycle(names []string) *NameCycle {
	if len(names) == 0 {
		names = []string{"Bot"}
	}
	return &NameCycle{names: append([]string(nil), names...)}
}

func (c *NameCycle) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.names[c.next%len(c.names)]
	c.next++
	return n
}

// scheduleBot starts a thinking timer if the bot holds the turn.
func (r *Room) scheduleBot() {
	if !r.started || r.over {
		return
	}
	s := r.slots[r.current]
	if s == nil || !s.IsBot() {
		return
	}
	r.cancelBot()
	ctx, cancel := context.WithCancel(r.ctx)
	r.botCancel = cancel
	go r.think(ctx, r.current)
}

func (r *Room) cancelBot() {
	if r.botCancel != nil {
		r.botCancel()
		r.botCancel = nil
	}
}

func (r *Room) think(ctx context.Context, seat game.Seat) {
	if !wait(ctx, r.opts.BotDelay) {
		return
	}
	_ = r.do(func() error {
		if ctx.Err() != nil {
			return nil
		}
		return r.playBot(seat)
	})
}

func (r *Room) playBot(seat game.Seat) error {
	if !r.started || r.over || r.current != seat {
		return nil
	}
	mv, ok := game.ChooseMove(r.engine, seat, r.opts.Weights, r.rng)
	if !ok {
		r.log.Warn("bot_no_move", zap.Int("seat", int(seat)))
		return nil
	}
	if err := r.move(seat, mv); err != nil {
		r.log.Error("bot_move_rejected", zap.Int("seat", int(seat)), zap.Error(err))
		return err
	}
	return nil
}

// armFallback seats a bot if a lone public player is still waiting after
// BotFallbackAfter.
func (r *Room) armFallback() {
	if r.opts.BotFallbackAfter <= 0 || r.fallbackCancel != nil || r.Visibility != shared.Public {
		return
	}
	ctx, cancel := context.WithCancel(r.ctx)
	r.fallbackCancel = cancel
	go func() {
		if !wait(ctx, r.opts.BotFallbackAfter) {
			return
		}
		_ = r.do(func() error {
			if ctx.Err() != nil || r.started {
				return nil
			}
			r.fallbackCancel = nil
			r.log.Info("bot_fallback")
			_, err := r.addBot()
			return err
		})
	}()
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
