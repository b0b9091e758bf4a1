// Package main - Entry point for the warehouse quote server
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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"warehouse-quote/adapters/catalog"
	"warehouse-quote/api"
	core "warehouse-quote/core/catalog"
	"warehouse-quote/core/engine"
	"warehouse-quote/internal/config"
	"warehouse-quote/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "whquote-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfgPath := flag.String("config", os.Getenv("WHQUOTE_CONFIG"), "config file (yaml, json or toml)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.Named("server")

	src, err := catalog.Open(cfg.Catalog, logging.Named("catalog"))
	if err != nil {
		return err
	}
	if c, ok := src.(catalog.Closer); ok {
		defer c.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	holder := core.NewHolder(nil)
	snap, err := catalog.LoadWithRetry(ctx, src, holder, cfg.Catalog.StartupRetry, logging.Named("catalog"))
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		zap.String("source", snap.Source),
		zap.Int("rates", snap.Rates.Len()),
		zap.String("hash", snap.ContentHash),
	)

	opts := []api.Option{api.WithAllowedOrigins(cfg.Server.AllowedOrigins)}

	var refresher *catalog.Refresher
	if cfg.Catalog.RefreshSchedule != "" {
		refresher = catalog.NewRefresher(src, holder, logging.Named("refresher"))
		if err := refresher.Start(cfg.Catalog.RefreshSchedule); err != nil {
			return err
		}
		opts = append(opts, api.WithRefreshStatus(refresher.LastResult))
	}

	apiServer := api.NewServer(holder, engine.NewCalculator(logging.Named("engine")), logging.Named("http"), version, opts...)
	httpServer := apiServer.HTTPServer(cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.String("version", version))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if refresher != nil {
		select {
		case <-refresher.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}
	return httpServer.Shutdown(shutdownCtx)
}
