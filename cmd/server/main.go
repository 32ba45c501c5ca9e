package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/config"
	"github.com/Simplici0/foamquote/internal/db"
	"github.com/Simplici0/foamquote/internal/logger"
	"github.com/Simplici0/foamquote/internal/migrations"
	"github.com/Simplici0/foamquote/internal/seed"
	"github.com/Simplici0/foamquote/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "foamquote")
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	for _, w := range cfg.Warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.OpenContext(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}
	version, err := migrations.Version(database)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Info("database ready", zap.String("path", cfg.DBPath), zap.Int64("schema_version", version))

	settings, err := config.LoadBusinessSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}
	stats, err := seed.Run(ctx, database, seed.Config{Settings: settings, Demo: cfg.IsDev()})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	log.Info("seed complete", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))

	srv := &server{store: store.New(database), log: log}
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
