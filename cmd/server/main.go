package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"

	"github.com/vocadrill/backend/internal/api"
	"github.com/vocadrill/backend/internal/domain/wordbank"
	"github.com/vocadrill/backend/internal/infrastructure/config"
	"github.com/vocadrill/backend/internal/service"
	"github.com/vocadrill/backend/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	bank, err := loadBank(cfg.WordsPath)
	if err != nil {
		logger.Error("failed to load word bank", "path", cfg.WordsPath, "error", err)
		os.Exit(1)
	}
	logger.Info("word bank loaded",
		"path", cfg.WordsPath,
		"valid_items", bank.Len(),
		"dropped_records", bank.Dropped(),
	)

	roster := lo.Map(cfg.Learners, func(l config.Learner, _ int) service.Learner {
		return service.Learner{ID: l.ID, Name: l.Name}
	})

	sessions := service.NewSessionService(bank, db, roster, cfg.SeenRetentionDays, logger)
	handler := api.NewHandler(sessions, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

func loadBank(path string) (*wordbank.WordBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wordbank.Load(f)
}
