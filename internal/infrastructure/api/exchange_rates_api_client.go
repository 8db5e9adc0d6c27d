package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
)

const (
	// DefaultBaseURL is the public exchangeratesapi.io endpoint
	DefaultBaseURL = "https://api.exchangeratesapi.io/"

	requestTimeout = 10 * time.Second
	maxBodyBytes   = 32 << 10
)

// ExchangeRatesAPIClient fetches historical daily rates from an exchangeratesapi.io compatible service
type ExchangeRatesAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewExchangeRatesAPIClient creates a new client. An empty baseURL selects DefaultBaseURL and a nil
// httpClient gets the fixed 10 second request timeout.
func NewExchangeRatesAPIClient(baseURL, apiKey string, httpClient *http.Client, log logger.Logger) *ExchangeRatesAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: requestTimeout,
		}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExchangeRatesAPIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     log,
	}
}

// RatesResponse is the subset of the API response the client reads.
// {"rates":{"USD":1.0,"GBP":0.7224675544},"base":"USD","date":"2021-03-08"}
type RatesResponse struct {
	Base  string              `json:"base"`
	Date  string              `json:"date"`
	Rates map[string]*float64 `json:"rates"`
}

// FetchExchangeRate retrieves the rate from currencyFrom to currencyTo on date with a single request
func (c *ExchangeRatesAPIClient) FetchExchangeRate(ctx context.Context, currencyFrom, currencyTo string, date time.Time) (*entity.ExchangeRate, error) {
	reqURL := c.ratesURL(currencyFrom, currencyTo, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/json")

	c.logger.Debug("Requesting exchange rate", map[string]interface{}{
		"currency_from": currencyFrom,
		"currency_to":   currencyTo,
		"date":          date.Format(entity.DateLayout),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError("failed to execute request", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransportError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: API returned error status: %d, body: %s",
			entity.ErrNetworkFailure, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	rate, err := parseRate(body, currencyTo)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Exchange rate received", map[string]interface{}{
		"currency_from": currencyFrom,
		"currency_to":   currencyTo,
		"date":          date.Format(entity.DateLayout),
		"rate":          rate,
	})

	return &entity.ExchangeRate{
		From: currencyFrom,
		To:   currencyTo,
		Date: date,
		Rate: rate,
	}, nil
}

func (c *ExchangeRatesAPIClient) ratesURL(currencyFrom, currencyTo string, date time.Time) string {
	q := url.Values{}
	q.Set("symbols", currencyFrom+","+currencyTo)
	q.Set("base", currencyFrom)
	if c.apiKey != "" {
		q.Set("access_key", c.apiKey)
	}
	return c.baseURL + date.Format(entity.DateLayout) + "?" + q.Encode()
}

func parseRate(body []byte, currency string) (float64, error) {
	var ratesResp RatesResponse
	if err := json.Unmarshal(body, &ratesResp); err != nil {
		return 0, fmt.Errorf("%w: cannot parse json: %v: %s", entity.ErrMalformedResponse, err, body)
	}
	if ratesResp.Rates == nil {
		return 0, fmt.Errorf("%w: no rates in response: %s", entity.ErrMalformedResponse, body)
	}

	rate, ok := ratesResp.Rates[currency]
	if !ok || rate == nil {
		return 0, fmt.Errorf("%w: no rate for %s in response: %s", entity.ErrMalformedResponse, currency, body)
	}

	return *rate, nil
}

func classifyTransportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %v", entity.ErrTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %v", entity.ErrNetworkFailure, op, err)
}
