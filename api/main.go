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
	"github.com/go-chi/chi/v5/middleware"

	"github.com/beaten-by-the-market/krx-radar/internal/config"
	"github.com/beaten-by-the-market/krx-radar/internal/deepsearch"
	"github.com/beaten-by-the-market/krx-radar/internal/logger"
	"github.com/beaten-by-the-market/krx-radar/internal/roster"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, err := roster.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("init roster store", slog.Any("err", err))
		os.Exit(1)
	}
	defer store.Close()

	ds := deepsearch.New(deepsearch.Config{
		BaseURL:            cfg.DeepSearchBaseURL,
		APIKey:             cfg.DeepSearchAPIKey,
		Timeout:            cfg.RequestTimeout,
		MaxRetries:         cfg.MaxRetries,
		RetryDelay:         cfg.RetryDelay,
		RequestsPerSecond:  cfg.RequestsPerSecond,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}, log)

	srv := &server{
		log:    log,
		cfg:    cfg,
		ds:     ds,
		roster: roster.NewCache(store, cfg.RosterTTL),
		store:  store,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/presets", srv.handlePresets)
	r.Get("/roster", srv.handleRoster)
	r.Get("/news", srv.handleNews)
	r.Get("/stocks/{symbol}/prices", srv.handleStockPrices)
	r.Get("/stocks/{symbol}/overview", srv.handleStockOverview)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
