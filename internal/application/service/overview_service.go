// Package service internal/application/service/overview_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	domainservice "github.com/damon-houk/exchange-rate-overview/internal/domain/service"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
)

// AcceptableRetrievalFailureFraction is the largest fraction of business days whose rate may be
// missing before the whole overview is rejected
const AcceptableRetrievalFailureFraction = 0.05

// OverviewService aggregates daily exchange rates over a date range
type OverviewService struct {
	provider domainservice.RateProvider
	logger   logger.Logger
}

// NewOverviewService creates a new overview service
func NewOverviewService(provider domainservice.RateProvider, log logger.Logger) *OverviewService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &OverviewService{
		provider: provider,
		logger:   log,
	}
}

// GetOverview walks every business day in dates, looks up its rate and returns the mean together with
// the earliest minimum and maximum. Days that fail are logged and counted against the failure budget.
func (s *OverviewService) GetOverview(ctx context.Context, currencyFrom, currencyTo string, dates entity.DateRange) (*entity.ExchangeSummary, error) {
	if strings.EqualFold(currencyFrom, currencyTo) {
		return nil, fmt.Errorf("%w: you have to pick two different currencies", entity.ErrInvalidInput)
	}
	if err := dates.Validate(); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(map[string]interface{}{
		"currency_from": currencyFrom,
		"currency_to":   currencyTo,
	})

	log.Info("Building exchange rate overview", map[string]interface{}{
		"date_from": dates.Start.Format(entity.DateLayout),
		"date_to":   dates.End.Format(entity.DateLayout),
	})

	var (
		expectedDays  int
		retrievedDays int
		rateSum       float64
		minRate       entity.RateSample
		maxRate       entity.RateSample
	)

	for day := dates.Start; !day.After(dates.End); day = day.AddDate(0, 0, 1) {
		if !isBusinessDay(day) {
			continue
		}
		expectedDays++

		rate, err := s.provider.GetRate(ctx, currencyFrom, currencyTo, day)
		if err != nil {
			log.Warn("Failed to retrieve rate", map[string]interface{}{
				"date":  day.Format(entity.DateLayout),
				"error": err.Error(),
			})
			continue
		}

		// strict comparisons keep the earliest date on ties
		if retrievedDays == 0 || rate < minRate.Value {
			minRate = entity.RateSample{Value: rate, Date: day}
		}
		if retrievedDays == 0 || rate > maxRate.Value {
			maxRate = entity.RateSample{Value: rate, Date: day}
		}
		retrievedDays++
		rateSum += rate
	}

	if expectedDays == 0 || retrievedDays == 0 {
		return nil, fmt.Errorf("%w: could not retrieve even one rate, perhaps pick a date range with more working days", entity.ErrNoData)
	}

	failureFraction := 1 - float64(retrievedDays)/float64(expectedDays)
	if failureFraction > AcceptableRetrievalFailureFraction {
		log.Error("Failure rate exceeded acceptable threshold", map[string]interface{}{
			"expected_days":  expectedDays,
			"retrieved_days": retrievedDays,
		})
		return nil, fmt.Errorf("%w: failure rate exceeded acceptable threshold (%v)",
			entity.ErrExcessiveFailureRate, AcceptableRetrievalFailureFraction)
	}

	summary := &entity.ExchangeSummary{
		MeanRate: rateSum / float64(retrievedDays),
		MinRate:  minRate,
		MaxRate:  maxRate,
	}
	if retrievedDays != expectedDays {
		summary.Notice = fmt.Sprintf("we failed to retrieve %d of %d rates", expectedDays-retrievedDays, expectedDays)
	}

	log.Info("Exchange rate overview completed", map[string]interface{}{
		"expected_days":  expectedDays,
		"retrieved_days": retrievedDays,
		"mean_rate":      summary.MeanRate,
	})

	return summary, nil
}

func isBusinessDay(day time.Time) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}
