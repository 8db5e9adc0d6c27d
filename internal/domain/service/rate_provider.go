package service

import (
	"context"
	"time"
)

// RateProvider returns the exchange rate between two currencies on a date
type RateProvider interface {
	GetRate(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (float64, error)
}

// RateProviderFunc adapts an ordinary function to the RateProvider interface
type RateProviderFunc func(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (float64, error)

// GetRate calls f
func (f RateProviderFunc) GetRate(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (float64, error) {
	return f(ctx, currencyFrom, currencyTo, date)
}
