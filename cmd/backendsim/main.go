package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/example/frontdesk/internal/backendsim"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := 8091
	if value := strings.TrimSpace(os.Getenv("BACKENDSIM_HTTP_PORT")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			logger.Error("BACKENDSIM_HTTP_PORT is invalid", "value", value)
			os.Exit(1)
		}
		port = parsed
	}

	seed := time.Now().UnixNano()
	if value := strings.TrimSpace(os.Getenv("BACKENDSIM_SEED")); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			logger.Error("BACKENDSIM_SEED is invalid", "value", value)
			os.Exit(1)
		}
		seed = parsed
	}

	data := backendsim.Seed(time.Now(), seed)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           backendsim.NewServer(data, logger).Handler(),
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

	logger.Info("backend simulator listening", "addr", server.Addr,
		"rooms", len(data.Rooms), "bookings", len(data.Bookings), "accounts", len(data.Accounts))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
