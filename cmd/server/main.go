package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mapmaker/devserver/internal/config"
	"github.com/mapmaker/devserver/internal/server"
	"github.com/mapmaker/devserver/internal/static"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Assets ---
	root := static.NewRoot(cfg.PublicDir)
	if !root.HasIndex() {
		logger.Warn("fallback document missing, unmatched routes will fail",
			"path", filepath.Join(cfg.PublicDir, static.IndexFile))
	}

	// --- HTTP Server ---
	srv := server.New(server.Options{Addr: cfg.Addr(), URL: cfg.URL()}, logger, root)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
