// internal/infrastructure/db/cached_exchange_rate_repository_test.go
package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	"github.com/damon-houk/exchange-rate-overview/internal/domain/repository"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/cache"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-rate-overview/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedExchangeRateRepository(t *testing.T) {
	ctx := context.Background()
	testDate := time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC)
	key := entity.NewRateKey("USD", "GBP", testDate)

	t.Run("Cache hit skips the client", func(t *testing.T) {
		rateCache := new(mocks.MockRateCache)
		client := new(mocks.MockExchangeRateClient)
		repo := NewCachedExchangeRateRepository(rateCache, client, logger.NopLogger{})

		rateCache.On("Get", ctx, key).Return(0.72, true, nil).Once()

		rate, err := repo.GetRate(ctx, "USD", "GBP", testDate)

		assert.NoError(t, err)
		assert.Equal(t, 0.72, rate)
		rateCache.AssertExpectations(t)
		client.AssertNotCalled(t, "FetchExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache miss fetches and persists", func(t *testing.T) {
		rateCache := new(mocks.MockRateCache)
		client := new(mocks.MockExchangeRateClient)
		repo := NewCachedExchangeRateRepository(rateCache, client, logger.NopLogger{})

		rateCache.On("Get", ctx, key).Return(0.0, false, nil).Once()
		client.On("FetchExchangeRate", ctx, "USD", "GBP", testDate).
			Return(&entity.ExchangeRate{From: "USD", To: "GBP", Date: testDate, Rate: 0.7224675544}, nil).Once()
		rateCache.On("Put", ctx, key, 0.7224675544).Return(nil).Once()

		rate, err := repo.GetRate(ctx, "USD", "GBP", testDate)

		assert.NoError(t, err)
		assert.Equal(t, 0.7224675544, rate)
		rateCache.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("Corrupt cache entry is a hard error", func(t *testing.T) {
		rateCache := new(mocks.MockRateCache)
		client := new(mocks.MockExchangeRateClient)
		repo := NewCachedExchangeRateRepository(rateCache, client, logger.NopLogger{})

		corrupt := fmt.Errorf("%w: cannot parse cached rate value", entity.ErrCacheCorrupt)
		rateCache.On("Get", ctx, key).Return(0.0, false, corrupt).Once()

		_, err := repo.GetRate(ctx, "USD", "GBP", testDate)

		assert.ErrorIs(t, err, entity.ErrCacheCorrupt)
		client.AssertNotCalled(t, "FetchExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Client error", func(t *testing.T) {
		rateCache := new(mocks.MockRateCache)
		client := new(mocks.MockExchangeRateClient)
		repo := NewCachedExchangeRateRepository(rateCache, client, logger.NopLogger{})

		rateCache.On("Get", ctx, key).Return(0.0, false, nil).Once()
		client.On("FetchExchangeRate", ctx, "USD", "GBP", testDate).
			Return(nil, fmt.Errorf("%w: connection refused", entity.ErrNetworkFailure)).Once()

		_, err := repo.GetRate(ctx, "USD", "GBP", testDate)

		assert.ErrorIs(t, err, entity.ErrNetworkFailure)
		assert.Contains(t, err.Error(), "failed to retrieve exchange rate")
		rateCache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache write failure fails the lookup", func(t *testing.T) {
		rateCache := new(mocks.MockRateCache)
		client := new(mocks.MockExchangeRateClient)
		repo := NewCachedExchangeRateRepository(rateCache, client, logger.NopLogger{})

		rateCache.On("Get", ctx, key).Return(0.0, false, nil).Once()
		client.On("FetchExchangeRate", ctx, "USD", "GBP", testDate).
			Return(&entity.ExchangeRate{From: "USD", To: "GBP", Date: testDate, Rate: 0.72}, nil).Once()
		rateCache.On("Put", ctx, key, 0.72).Return(errors.New("disk full")).Once()

		_, err := repo.GetRate(ctx, "USD", "GBP", testDate)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to cache exchange rate")
	})
}

func TestCachedExchangeRateRepositoryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	testDate := time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC)

	rateCaches := map[string]func(t *testing.T) repository.RateCache{
		"memory": func(t *testing.T) repository.RateCache {
			return cache.NewMemoryRateCache()
		},
		"file": func(t *testing.T) repository.RateCache {
			c, err := cache.NewFileRateCache(t.TempDir())
			require.NoError(t, err)
			return c
		},
		"badger": func(t *testing.T) repository.RateCache {
			return NewBadgerRateCache(openTestBadger(t))
		},
	}

	for name, newCache := range rateCaches {
		t.Run(name, func(t *testing.T) {
			client := new(mocks.MockExchangeRateClient)
			client.On("FetchExchangeRate", ctx, "USD", "GBP", testDate).
				Return(&entity.ExchangeRate{From: "USD", To: "GBP", Date: testDate, Rate: 0.7224675544}, nil).Once()

			repo := NewCachedExchangeRateRepository(newCache(t), client, logger.NopLogger{})

			first, err := repo.GetRate(ctx, "USD", "GBP", testDate)
			require.NoError(t, err)
			second, err := repo.GetRate(ctx, "USD", "GBP", testDate)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			client.AssertNumberOfCalls(t, "FetchExchangeRate", 1)
		})
	}
}
