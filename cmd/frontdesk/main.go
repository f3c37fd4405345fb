package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/frontdesk/internal/backend"
	"github.com/example/frontdesk/internal/config"
	"github.com/example/frontdesk/internal/httpapi"
	"github.com/example/frontdesk/internal/persistence/sqlite"
	"github.com/example/frontdesk/internal/refresh"
	"github.com/example/frontdesk/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	tokenStore, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := tokenStore.Close(); cerr != nil {
			logger.Error("failed to close session store", "error", cerr)
		}
	}()

	decoder := session.NewDecoder(tokenStore, time.Now, logger)
	client := backend.NewClient(cfg.BackendURL, tokenStore, logger)
	snapshots := httpapi.NewSnapshotHolder()

	poller := refresh.NewPoller(client, cfg.PollInterval, snapshots.Apply, time.Now, logger)
	handle := poller.Start(ctx)
	defer handle.Stop()

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Sessions: httpapi.NewSessionHandler(decoder, logger),
		Dashboard: httpapi.NewDashboardHandler(httpapi.DashboardConfig{
			Snapshots:       snapshots,
			CheckoutWindow:  cfg.CheckoutWindow,
			CheckoutLimit:   cfg.CheckoutLimit,
			RoomInspections: cfg.RoomInspectionEstimate,
			Logger:          logger,
		}),
		Validator:  decoder,
		Logger:     logger,
		Middleware: []func(http.Handler) http.Handler{httpapi.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("front-desk dashboard listening", "addr", server.Addr, "backend", cfg.BackendURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
