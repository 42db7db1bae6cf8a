package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	// swagger packages
	_ "tabletop/docs"

	httpapi "tabletop/internal/api/http"
	"tabletop/internal/api/ws"
	"tabletop/internal/config"
	"tabletop/internal/obslog"
	"tabletop/internal/room"
	"tabletop/internal/stats"
	"tabletop/internal/store"
)

const shutdownTimeout = 10 * time.Second

// @title Tabletop Game Server API
// @version 1.0
// @description Connect-4 and Checkers rooms over WebSocket, with a heuristic fallback opponent (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	obslog.InitFromEnv()
	log := obslog.L()
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Fatal("server_exit", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	counter, closeCounter, err := newCounter(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer closeCounter()

	rm := room.NewManager(store.NewMemoryStore(), cfg, counter)
	hub := ws.NewHub(rm, cfg.AllowedOrigins)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(rm, hub, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting_down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		rm.Shutdown()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// newCounter picks the Redis counter when url is set, else a per-process one.
func newCounter(ctx context.Context, url string) (stats.Counter, func(), error) {
	if url == "" {
		return stats.NewMemory(), func() {}, nil
	}
	rc, err := stats.DialRedis(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	return rc, func() { _ = rc.Close() }, nil
}
