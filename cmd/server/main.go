package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"mamacare/internal/app"
	"mamacare/internal/platform/config"
	"mamacare/internal/platform/httpserver"
	"mamacare/internal/platform/logger"
	"mamacare/internal/platform/metrics"
	platformredis "mamacare/internal/platform/redis"
	"mamacare/internal/registry"
	"mamacare/internal/session"
	httptransport "mamacare/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err.Error())
		os.Exit(1)
	}

	var store session.Store = session.NewInMemoryStore()
	if redisClient != nil {
		store = session.NewRedisStore(redisClient.Client, 24*time.Hour)
	}

	m := metrics.New()
	application := app.New(cfg, registry.NewHTTPTransport(cfg.RequestTimeout), store, log, m)

	handler := httptransport.NewHandler(log, application.Gateway, redisClient)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler, cfg.InboundToken))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting mamacare", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
