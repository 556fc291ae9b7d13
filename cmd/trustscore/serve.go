package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnishkina/trustscore/internal/cache"
	"github.com/dnishkina/trustscore/internal/config"
	"github.com/dnishkina/trustscore/internal/monitoring"
	"github.com/dnishkina/trustscore/internal/pipeline"
	"github.com/dnishkina/trustscore/internal/server"
)

const responseCacheTTL = 15 * time.Minute

// runServe starts the HTTP API with graceful shutdown.
func runServe(cfg config.Config, runner *pipeline.Runner, metrics *monitoring.Metrics, logger *monitoring.Logger) error {
	responseCache := cache.New(responseCacheTTL)
	srv := server.New(runner, responseCache, metrics, logger)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
