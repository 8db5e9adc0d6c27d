package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/app/setup"
	"github.com/damon-houk/exchange-rate-overview/internal/config"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/handler"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.GetDefaultLogger().Fatal("Server stopped with error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(logger.InfoLevel)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewJSONLogger(os.Stdout, cfg.LogLevel).WithField("service", "exchange-rate-overview")
	logger.SetDefaultLogger(log)

	log.Info("Starting exchange rate overview server", map[string]interface{}{
		"cache_backend": string(cfg.CacheBackend),
		"cache_dir":     cfg.CacheDir,
		"port":          cfg.Port,
	})

	deps, err := setup.Build(cfg, nil, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Error("Error closing rate cache", map[string]interface{}{"error": err.Error()})
		}
	}()

	router := handler.NewRouter(handler.NewOverviewHandler(deps.Overview, log), log)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("Shutting down server", nil)
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}
