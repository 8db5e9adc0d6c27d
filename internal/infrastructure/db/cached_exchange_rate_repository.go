// Package db internal/infrastructure/db/cached_exchange_rate_repository.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	"github.com/damon-houk/exchange-rate-overview/internal/domain/repository"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
)

// ExchangeRateClient defines an interface for remote sources of exchange rate data
type ExchangeRateClient interface {
	FetchExchangeRate(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (*entity.ExchangeRate, error)
}

// CachedExchangeRateRepository looks rates up in the cache first and falls back to the client,
// persisting every fetched rate before returning it
type CachedExchangeRateRepository struct {
	cache  repository.RateCache
	client ExchangeRateClient
	logger logger.Logger
}

// NewCachedExchangeRateRepository creates a new cache-then-network rate provider
func NewCachedExchangeRateRepository(cache repository.RateCache, client ExchangeRateClient, log logger.Logger) *CachedExchangeRateRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CachedExchangeRateRepository{
		cache:  cache,
		client: client,
		logger: log,
	}
}

// GetRate returns the rate for the currency pair on date
func (r *CachedExchangeRateRepository) GetRate(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (float64, error) {
	key := entity.NewRateKey(currencyFrom, currencyTo, date)

	cached, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		// a corrupt entry is not treated as a miss
		return 0, err
	}
	if ok {
		r.logger.Debug("Exchange rate cache hit", map[string]interface{}{
			"key":  key.String(),
			"rate": cached,
		})
		return cached, nil
	}

	rate, err := r.client.FetchExchangeRate(ctx, currencyFrom, currencyTo, date)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve exchange rate: %w", err)
	}

	if err := r.cache.Put(ctx, key, rate.Rate); err != nil {
		r.logger.Error("Failed to cache exchange rate", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})
		return 0, fmt.Errorf("failed to cache exchange rate: %w", err)
	}

	r.logger.Debug("Exchange rate fetched and cached", map[string]interface{}{
		"key":  key.String(),
		"rate": rate.Rate,
	})

	return rate.Rate, nil
}
