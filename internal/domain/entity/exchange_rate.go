package entity

import (
	"time"
)

// DateLayout is the calendar date format used on the command line, in cache keys and on the wire
const DateLayout = "2006-01-02"

// ExchangeRate represents the rate between two currencies on a specific date
type ExchangeRate struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// RateKey identifies a single cached rate
type RateKey struct {
	From string
	To   string
	Date time.Time
}

// NewRateKey creates a key for the given currency pair and date
func NewRateKey(from, to string, date time.Time) RateKey {
	return RateKey{From: from, To: to, Date: date}
}

// String renders the key as FROM_TO_YYYY-MM-DD
func (k RateKey) String() string {
	return k.From + "_" + k.To + "_" + k.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
