// Package main is the entry point for the therapist-finder HTTP server.
// The `main` package with a `main()` function is what the Go toolchain builds
// into an executable: one static binary serving the page and the JSON API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/config"
	"github.com/fleveque/therapist-finder/internal/llm"
	"github.com/fleveque/therapist-finder/internal/server"
	"github.com/fleveque/therapist-finder/internal/service"
)

func main() {
	// os.Exit skips deferred functions, so all real work happens in run()
	// and main only turns its error into an exit code.
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("THERAPIST_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// zap writes JSON in production and a human-readable console format in
	// development. Fields are typed (zap.String, zap.Int), not format strings.
	var logger *zap.Logger
	if cfg.Log.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	// defer runs when run() returns, like a finally block. Sync flushes
	// buffered entries; it commonly fails on stdout/stderr, so the error is dropped.
	defer func() { _ = logger.Sync() }()

	client, err := llm.New(cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("creating completion client: %w", err)
	}
	// A missing key is not fatal at startup: it is read per search and
	// surfaces as the generic service error.
	if _, err := llm.EnvKey(cfg.LLM.Active().APIKeyEnv)(); err != nil {
		logger.Warn("completion API key not set; searches will fail until it is",
			zap.String("key_env", cfg.LLM.Active().APIKeyEnv))
	}

	finder := service.NewTherapistService(client, cfg.LLM.Temperature, logger)
	srv, err := server.New(cfg, server.Deps{
		Finder:   finder,
		Provider: client.ProviderName(),
		Model:    client.ModelName(),
	}, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Graceful shutdown: SIGINT (Ctrl+C) or SIGTERM (docker stop) arrive on a
	// channel, and the server runs in its own goroutine so main can wait on both.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// select blocks until one of the channels is ready.
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	// Give in-flight searches 10 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
