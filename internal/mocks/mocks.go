// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockRateProvider mocks the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) GetRate(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (float64, error) {
	args := m.Called(ctx, currencyFrom, currencyTo, date)
	return args.Get(0).(float64), args.Error(1)
}

// MockRateCache mocks the RateCache interface
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) Get(ctx context.Context, key entity.RateKey) (float64, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *MockRateCache) Put(ctx context.Context, key entity.RateKey, rate float64) error {
	args := m.Called(ctx, key, rate)
	return args.Error(0)
}

// MockExchangeRateClient mocks the remote exchange rate API
type MockExchangeRateClient struct {
	mock.Mock
}

func (m *MockExchangeRateClient) FetchExchangeRate(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, currencyFrom, currencyTo, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

// MockLogger mocks the logger interface. WithField and WithFields return the mock itself.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	return m
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return m
}
