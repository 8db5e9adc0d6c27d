// Package setup wires configuration into the rate cache, rate provider and overview service.
package setup

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/damon-houk/exchange-rate-overview/internal/application/service"
	"github.com/damon-houk/exchange-rate-overview/internal/config"
	"github.com/damon-houk/exchange-rate-overview/internal/domain/repository"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/api"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/cache"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/db"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
)

// BadgerDirName is the directory under CACHE_DIR holding the badger backend
const BadgerDirName = "rates.badger"

// Dependencies holds the wired application components
type Dependencies struct {
	Cache    repository.RateCache
	Provider *db.CachedExchangeRateRepository
	Overview *service.OverviewService

	closers []func() error
}

// Build creates every component described by cfg. httpClient may be nil.
func Build(cfg config.Config, httpClient *http.Client, log logger.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	rateCache, err := deps.newRateCache(cfg)
	if err != nil {
		return nil, err
	}

	client := api.NewExchangeRatesAPIClient(cfg.APIBaseURL, cfg.APIKey, httpClient, log)

	deps.Cache = rateCache
	deps.Provider = db.NewCachedExchangeRateRepository(rateCache, client, log)
	deps.Overview = service.NewOverviewService(deps.Provider, log)

	log.Debug("Dependencies initialized", map[string]interface{}{
		"cache_backend": string(cfg.CacheBackend),
		"cache_dir":     cfg.CacheDir,
		"api_base_url":  cfg.APIBaseURL,
	})

	return deps, nil
}

func (d *Dependencies) newRateCache(cfg config.Config) (repository.RateCache, error) {
	switch cfg.CacheBackend {
	case config.FileBackend, "":
		fileCache, err := cache.NewFileRateCache(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		return fileCache, nil
	case config.BadgerBackend:
		badgerDB, err := db.OpenBadger(filepath.Join(cfg.CacheDir, BadgerDirName))
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, badgerDB.Close)
		return db.NewBadgerRateCache(badgerDB), nil
	case config.MemoryBackend:
		return cache.NewMemoryRateCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}

// Close releases resources held by the cache backend
func (d *Dependencies) Close() error {
	var errs []error
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
