package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/hospo-ops/internal/config"
	"github.com/georgemunganga/hospo-ops/internal/db"
	"github.com/georgemunganga/hospo-ops/internal/server"
	"github.com/sirupsen/logrus"
)

var migrateOnly = flag.Bool("migrate-only", false, "Apply the database schema and exit")

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		logrus.WithError(err).Fatal("invalid logging configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Storage ─────────────────────────────────────────────
	var repos server.Repositories
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(ctx, cfg.DatabaseURL, db.PoolOptions{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			logger.WithError(err).Fatal("connect to database")
		}
		defer conn.Close()
		if err := db.Migrate(ctx, conn); err != nil {
			logger.WithError(err).Fatal("migrate database")
		}
		logger.Info("connected to database")
		if *migrateOnly {
			logger.Info("migrations completed")
			return
		}
		repos = server.PostgresRepositories(conn)
	case cfg.IsDevelopment() && !*migrateOnly:
		logger.Warn("DATABASE_URL not set; using in-memory storage")
		repos = server.MemoryRepositories()
	default:
		logger.Fatal("DATABASE_URL is required")
	}

	if cfg.APIKey == "" {
		logger.Warn("API_KEY not set; every protected route will answer 401")
	}
	if cfg.SquareSignatureKey == "" && !cfg.IsDevelopment() {
		logger.Warn("SQUARE_WEBHOOK_SIGNATURE_KEY not set; webhooks will be rejected")
	}

	// ── Start Server ────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(cfg, logger, repos),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "env": cfg.Env}).Info("hospo-ops API server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("graceful shutdown failed")
		}
	}
}
