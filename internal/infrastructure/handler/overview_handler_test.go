// internal/infrastructure/handler/overview_handler_test.go
package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/application/service"
	domainservice "github.com/damon-houk/exchange-rate-overview/internal/domain/service"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/handler"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer creates a test server backed by the given provider
func setupTestServer(t *testing.T, provider domainservice.RateProvider) *httptest.Server {
	t.Helper()
	log := logger.NopLogger{}
	overviewService := service.NewOverviewService(provider, log)
	router := handler.NewRouter(handler.NewOverviewHandler(overviewService, log), log)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dayOfMonth(fail func(time.Time) bool) domainservice.RateProvider {
	return domainservice.RateProviderFunc(func(_ context.Context, _, _ string, d time.Time) (float64, error) {
		if fail != nil && fail(d) {
			return 0, errors.New("upstream unavailable")
		}
		return float64(d.Day()), nil
	})
}

func getOverview(t *testing.T, server *httptest.Server, params url.Values) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + "/overview?" + params.Encode())
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func overviewParams(from, to, start, end string) url.Values {
	return url.Values{"from": {from}, "to": {to}, "start": {start}, "end": {end}}
}

func TestGetOverview(t *testing.T) {
	server := setupTestServer(t, dayOfMonth(func(d time.Time) bool {
		return d.Month() == time.March && d.Day() == 5
	}))

	resp := getOverview(t, server, overviewParams("EUR", "USD", "2021-01-01", "2021-03-05"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	var body handler.OverviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, handler.OverviewResponse{
		CurrencyFrom: "EUR",
		CurrencyTo:   "USD",
		DateFrom:     "2021-01-01",
		DateTo:       "2021-03-05",
		MeanRate:     13.577777777777778,
		MinRate:      handler.RateSampleResponse{Value: 1, Date: "2021-01-01"},
		MaxRate:      handler.RateSampleResponse{Value: 29, Date: "2021-01-29"},
		Notice:       "we failed to retrieve 1 of 46 rates",
	}, body)
}

func TestGetOverviewErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider domainservice.RateProvider
		params   url.Values
		status   int
		errMsg   string
	}{
		{
			name:     "Missing currency",
			provider: dayOfMonth(nil),
			params:   url.Values{"to": {"USD"}, "start": {"2021-03-01"}, "end": {"2021-03-05"}},
			status:   http.StatusBadRequest,
			errMsg:   "Invalid currency code",
		},
		{
			name:     "Bad date",
			provider: dayOfMonth(nil),
			params:   overviewParams("EUR", "USD", "2021/03/01", "2021-03-05"),
			status:   http.StatusBadRequest,
			errMsg:   "Invalid date",
		},
		{
			name:     "Same currency",
			provider: dayOfMonth(nil),
			params:   overviewParams("EUR", "eur", "2021-03-01", "2021-03-05"),
			status:   http.StatusBadRequest,
			errMsg:   "Invalid input",
		},
		{
			name:     "Reversed range",
			provider: dayOfMonth(nil),
			params:   overviewParams("EUR", "USD", "2021-03-05", "2021-03-01"),
			status:   http.StatusBadRequest,
			errMsg:   "Invalid input",
		},
		{
			name:     "Weekend only",
			provider: dayOfMonth(nil),
			params:   overviewParams("EUR", "USD", "2021-03-06", "2021-03-07"),
			status:   http.StatusNotFound,
			errMsg:   "No exchange rate available",
		},
		{
			name:     "Too many failures",
			provider: dayOfMonth(func(d time.Time) bool { return d.Month() == time.March }),
			params:   overviewParams("EUR", "USD", "2021-01-01", "2021-03-05"),
			status:   http.StatusBadGateway,
			errMsg:   "Exchange rate service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestServer(t, tt.provider)

			resp := getOverview(t, server, tt.params)

			assert.Equal(t, tt.status, resp.StatusCode)

			var body handler.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.errMsg, body.Error)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, resp.Header.Get(middleware.RequestIDHeader), body.RequestID)
		})
	}
}

func TestGetOverviewMethodNotAllowed(t *testing.T) {
	server := setupTestServer(t, dayOfMonth(nil))

	resp, err := http.Post(server.URL+"/overview", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
