package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
)

const rateKeyPrefix = "rate:"

// BadgerRateCache implements the rate cache interface using BadgerDB
type BadgerRateCache struct {
	db *badger.DB
}

// NewBadgerRateCache creates a new BadgerDB rate cache
func NewBadgerRateCache(db *badger.DB) *BadgerRateCache {
	return &BadgerRateCache{db: db}
}

// OpenBadger opens (creating if needed) a BadgerDB database in dir with Badger's own logger disabled
func OpenBadger(dir string) (*badger.DB, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	badgerOpts := badger.DefaultOptions(dir).WithLogger(nil)
	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return badgerDB, nil
}

func badgerKey(key entity.RateKey) []byte {
	return []byte(rateKeyPrefix + key.From + ":" + key.To + ":" + key.Date.Format(entity.DateLayout))
}

// Get retrieves a cached rate
func (r *BadgerRateCache) Get(ctx context.Context, key entity.RateKey) (float64, bool, error) {
	var raw string

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			raw = string(val)
			return nil
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to retrieve rate %s: %w", key, err)
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: cannot parse cached rate value for %s: %v", entity.ErrCacheCorrupt, key, err)
	}

	return rate, true, nil
}

// Put stores a rate as decimal text
func (r *BadgerRateCache) Put(ctx context.Context, key entity.RateKey, rate float64) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(key), []byte(strconv.FormatFloat(rate, 'f', -1, 64)))
	})

	if err != nil {
		return fmt.Errorf("failed to store rate %s: %w", key, err)
	}

	return nil
}
