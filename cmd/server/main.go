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

	"github.com/rs/cors"

	"github.com/divvyup/divvyup/internal/api"
	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/config"
	"github.com/divvyup/divvyup/internal/currency"
	"github.com/divvyup/divvyup/internal/service"
	"github.com/divvyup/divvyup/internal/storage/sqlite"
	"github.com/divvyup/divvyup/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.SeedCategories(ctx); err != nil {
		slog.Error("Failed to seed categories", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	fx := currency.New(store, cfg.ExchangeAPIURL)

	server := api.New(
		store,
		authenticator,
		jwtManager,
		fx,
		service.NewExpenseService(store),
		service.NewBalanceService(store),
		service.NewAnalyticsService(store, fx),
		service.NewSettlementService(store),
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      corsHandler.Handler(server.Router()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", cfg.HTTPAddr, "db", cfg.DBPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
