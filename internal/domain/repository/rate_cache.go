// Package repository internal/domain/repository/rate_cache.go
package repository

import (
	"context"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
)

// RateCache defines the interface for the local rate store.
// Entries are never updated or invalidated once written.
type RateCache interface {
	// Get returns the cached rate and true, or false on a miss.
	// Unreadable content is reported as an error wrapping entity.ErrCacheCorrupt.
	Get(ctx context.Context, key entity.RateKey) (float64, bool, error)

	// Put stores a rate for the key
	Put(ctx context.Context, key entity.RateKey, rate float64) error
}
