// Package main wires together the comparison service binary.
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

	"go.uber.org/zap"

	"github.com/dquispe/comparador-presupuestal/internal/api"
	"github.com/dquispe/comparador-presupuestal/internal/compare"
	"github.com/dquispe/comparador-presupuestal/internal/config"
	"github.com/dquispe/comparador-presupuestal/internal/fetcher"
	"github.com/dquispe/comparador-presupuestal/internal/logging"
	"github.com/dquispe/comparador-presupuestal/internal/metrics"
	"github.com/dquispe/comparador-presupuestal/internal/parser"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	client := fetcher.New(fetcher.Config{
		UserAgent:   cfg.Portal.UserAgent,
		Timeout:     cfg.FetchTimeout(),
		InsecureTLS: cfg.Portal.InsecureTLS,
	})
	service := compare.NewService(client, parser.ParseDataset, logger.Named("compare"))
	apiServer := api.NewServer(service, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
