package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/history"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/internal/server"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Fatal("failed to open history store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer closeStore()

	srv := &http.Server{
		Addr: cfg.Address,
		Handler: server.NewHandler(logger, store, server.Options{
			MaxBodySize: cfg.BodySizeBytes(),
			SessionTTL:  cfg.SessionTTLDuration(),
			Version:     version,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	logger.Info("mortgage calculator listening",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("version", version),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// openStore picks Redis when an address is configured and process memory otherwise.
func openStore(cfg *server.Config) (history.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		return history.NewMemoryStore(cfg.HistoryLimit, cfg.SessionTTLDuration()), func() {}, nil
	}

	client, err := history.OpenRedis(cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	store := history.NewRedisStore(client, cfg.HistoryLimit, cfg.SessionTTLDuration())
	return store, func() { _ = client.Close() }, nil
}
