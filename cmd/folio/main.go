// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command folio runs the portfolio backend API server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/folio-go/internal/ai"
	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/handler/api"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/mail"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/scheduler"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/transfer"
	"github.com/olegiv/folio-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	importLegacy := flag.String("import-legacy", "", "Import blog content from the legacy MySQL database (DSN, needs parseTime=true)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - portfolio backend API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH           SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_CORS_ORIGINS      Comma-separated browser origins allowed by CORS\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SMTP_HOST         SMTP host for contact notifications (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_GEOIP_DB_PATH     GeoLite2-Country.mmdb path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_OPENAI_API_KEY    Enables the meta suggestion endpoint (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("folio %s\n", version.String())
		os.Exit(0)
	}

	if err := run(*importLegacy); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(legacyDSN string) error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger so WARN and ERROR records also land in the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	st := store.New(db)

	if legacyDSN != "" {
		return runLegacyImport(ctx, st, logger, legacyDSN)
	}

	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err)
			geo = nil
		} else {
			defer func() { _ = geo.Close() }()
			slog.Info("geoip country lookup enabled", "path", cfg.GeoIPDBPath)
		}
	} else {
		geo = nil
	}

	// Keep the interface nil when mail is unconfigured so nil checks work.
	var sender mail.Sender
	if m := mail.New(cfg); m != nil {
		sender = m
		slog.Info("contact notifications enabled", "host", cfg.SMTPHost)
	}

	aiClient := ai.New(cfg.OpenAIKey)
	if aiClient != nil {
		slog.Info("meta suggestion endpoint enabled")
	}

	sched := scheduler.New(st, logger, cfg.EventRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	analytics := service.NewAnalyticsService(st.Analytics, logger)
	contact := service.NewContactService(st.Contact, geo, sender, logger)
	h := api.NewHandler(st, analytics, contact, aiClient)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Mount("/api/v1", h.Routes(db))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// runLegacyImport copies blog content out of the legacy MySQL database
// and exits without starting the server.
func runLegacyImport(ctx context.Context, st *store.Store, logger *slog.Logger, dsn string) error {
	reader, err := transfer.NewReader(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	result, err := transfer.NewImporter(st, logger).Run(ctx, reader)
	if err != nil {
		return fmt.Errorf("legacy import: %w", err)
	}
	for _, msg := range result.Errors {
		slog.Warn("legacy import issue", "detail", msg)
	}
	fmt.Printf("imported %d categories, %d posts, %d headings (%d skipped, %d errors)\n",
		result.Categories, result.Posts, result.Headings, result.Skipped, len(result.Errors))
	return nil
}
