package entity

import (
	"fmt"
	"time"
)

// DateRange is an inclusive range of calendar dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a date range; it does not reorder the bounds
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: start, End: end}
}

// Validate ensures the range is not reversed
func (r DateRange) Validate() error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: date_from must precede or be equal to date_to", ErrInvalidInput)
	}
	return nil
}

// RateSample is a single retrieved rate together with the date it belongs to
type RateSample struct {
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
}

// ExchangeSummary holds the statistics for a date range.
// Notice is empty when every business day was retrieved.
type ExchangeSummary struct {
	MeanRate float64    `json:"mean_rate"`
	MinRate  RateSample `json:"min_rate"`
	MaxRate  RateSample `json:"max_rate"`
	Notice   string     `json:"notice,omitempty"`
}

// HasNotice reports whether some rates could not be retrieved
func (s *ExchangeSummary) HasNotice() bool {
	return s.Notice != ""
}
