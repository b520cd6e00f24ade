package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"yorkfacts/internal/backend"
	"yorkfacts/internal/config"
	"yorkfacts/internal/logger"
	"yorkfacts/internal/metrics"
	"yorkfacts/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New("yorkfacts", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()

	if err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server exited")
}

// run serves until ctx is canceled or the listener fails. The backend is
// closed on every return path.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) (err error) {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	b, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open fact store: %w", err)
	}
	defer func() {
		err = errors.Join(err, b.Close())
	}()

	metrics.Init(b.Store)

	srv := server.New(cfg, log)
	if err := srv.RegisterRoutes(ctx, b.Service); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
