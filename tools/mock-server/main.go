// Package main implements a mock auction backend for local development.
// It serves the /api REST surface from JSON fixtures with an in-memory
// user table, so the CLI can run without the real backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/donaldgifford/auction-browser/pkg/logger"
)

func main() {
	port := flag.Int("port", 8001, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/fixtures.json", "path to fixture file")
	logLevel := flag.String("log-level", "debug", "log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "text", "log format (text, json)")
	flag.Parse()

	log := logger.New(*logLevel, *logFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, fmt.Sprintf(":%d", *port), *fixtureFile, log); err != nil {
		log.Error("mock server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, fixturePath string, log *slog.Logger) error {
	fx, err := loadFixtures(fixturePath)
	if err != nil {
		return err
	}
	log.Info("loaded fixture",
		"auctions", len(fx.Auctions),
		"items", len(fx.Items),
		"users", len(fx.Users),
	)

	srv, err := newServer(fx, log, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e := srv.routes()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting mock backend", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down mock backend")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("mock backend stopped")
	return nil
}
