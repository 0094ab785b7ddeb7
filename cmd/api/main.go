// Package main is the entry point for the TravelMaker API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/travelmaker/backend/internal/config"
	"github.com/travelmaker/backend/internal/currency"
	"github.com/travelmaker/backend/internal/geo"
	"github.com/travelmaker/backend/internal/handler"
	"github.com/travelmaker/backend/internal/llm"
	"github.com/travelmaker/backend/internal/middleware"
	"github.com/travelmaker/backend/internal/repo"
	"github.com/travelmaker/backend/internal/service"
	"github.com/travelmaker/backend/internal/storage"
	"github.com/travelmaker/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if cfg.HomeCurrency != "" {
		currency.SetHome(cfg.HomeCurrency)
	}

	// --- Storage ----------------------------------------------------------
	// With DATABASE_URL set, state lives in Postgres and survives restarts.
	// Without it, the in-memory store serves development and demos.
	var store storage.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := migrate(pool); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		store = storage.NewPostgresStore(pool)
		slog.Info("database connection established")
	} else {
		store = storage.NewMemoryStore()
		slog.Warn("DATABASE_URL not set, using in-memory storage")
	}

	// --- Repos and clients ------------------------------------------------
	trips := repo.NewTripRepo(store)
	images := repo.NewImageRepo(store)
	suggestionCache := repo.NewSuggestionCache(store, cfg.SuggestionTTL)
	rateCache := repo.NewRateCache(store)

	geocoder := geo.NewClient(cfg.NominatimBaseURL)
	rateClient := currency.NewRateClient(cfg.ExchangeRateBaseURL)
	model := llm.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)

	// --- Services ---------------------------------------------------------
	tripSvc := service.NewTripService(trips)
	suggestionSvc := service.NewSuggestionService(trips, suggestionCache, model)
	distanceSvc := service.NewDistanceService(trips, geocoder)
	currencySvc := service.NewCurrencyService(rateCache, rateClient)
	exportSvc := service.NewExportService(trips)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	server := handler.NewServer(tripSvc, suggestionSvc, distanceSvc, currencySvc, exportSvc, geocoder, images)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// The write timeout leaves room for a full model round-trip on the
	// suggestion endpoint.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations using a database/sql view of the
// pool. The *sql.DB is closed afterwards; the pool itself stays open.
func migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("applied migration", "migration", res.Source.Path)
	}
	return nil
}
