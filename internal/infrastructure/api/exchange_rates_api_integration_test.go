// internal/infrastructure/api/exchange_rates_api_integration_test.go
package api

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func TestExchangeRatesAPIIntegration(t *testing.T) {
	// This test makes actual API calls - skip in short mode and without credentials
	if testing.Short() {
		t.Skip("Skipping exchange rates API integration test in short mode")
	}
	apiKey := os.Getenv("EXCHANGE_API_KEY")
	if apiKey == "" {
		t.Skip("EXCHANGE_API_KEY not set")
	}

	client := NewExchangeRatesAPIClient(os.Getenv("EXCHANGE_API_URL"), apiKey, nil, logger.NopLogger{})
	ctx := context.Background()

	// a past business day so the rate exists
	date := time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC)

	for _, currency := range []string{"USD", "GBP", "JPY"} {
		t.Run(currency, func(t *testing.T) {
			rate, err := client.FetchExchangeRate(ctx, "EUR", currency, date)
			if err != nil {
				t.Fatalf("Failed to get exchange rate EUR/%s: %v", currency, err)
			}

			assert.Equal(t, currency, rate.To)
			assert.Greater(t, rate.Rate, 0.0)
			t.Logf("Got exchange rate EUR/%s: %f on %s", currency, rate.Rate, date.Format("2006-01-02"))
		})
	}
}
