package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mittimitra/advisory/internal/bootstrap"
	"github.com/mittimitra/advisory/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	worker, err := bootstrap.NewWorker(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("bootstrap: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer worker.Close()

	metricsServer := &http.Server{
		Addr:    cfg.HTTP.MetricsAddr,
		Handler: worker.Metrics.Handler(),
	}
	go func() {
		worker.Logger.Info("worker metrics listening", "addr", cfg.HTTP.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			worker.Logger.Error("metrics server failed", "error", err)
		}
	}()

	if err := worker.Run(ctx); err != nil {
		worker.Logger.Error("worker failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
	worker.Logger.Info("worker stopped")
}
