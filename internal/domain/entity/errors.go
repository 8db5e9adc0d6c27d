package entity

import "errors"

// Error kinds. Concrete errors wrap one of these so callers can classify them with errors.Is.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNoData               = errors.New("no data")
	ErrExcessiveFailureRate = errors.New("excessive failure rate")

	ErrCacheCorrupt      = errors.New("cache corrupt")
	ErrNetworkFailure    = errors.New("network failure")
	ErrTimeout           = errors.New("timeout")
	ErrMalformedResponse = errors.New("malformed response")
)
