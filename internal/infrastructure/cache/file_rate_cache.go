package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
)

const fileExtension = ".cached"

// FileRateCache keeps one file per key holding the decimal text of the rate,
// e.g. EUR_USD_2021-03-01.cached containing 1.2121
type FileRateCache struct {
	dir string
}

// NewFileRateCache creates a file cache rooted at dir, creating the directory if needed
func NewFileRateCache(dir string) (*FileRateCache, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileRateCache{dir: dir}, nil
}

// Path returns the file that holds the rate for key
func (c *FileRateCache) Path(key entity.RateKey) string {
	return filepath.Join(c.dir, key.String()+fileExtension)
}

// Get reads the cached rate. Content that is not a number is reported as corrupt, not as a miss.
func (c *FileRateCache) Get(_ context.Context, key entity.RateKey) (float64, bool, error) {
	if err := validateKey(key); err != nil {
		return 0, false, err
	}
	path := c.Path(key)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cannot read cache file %s: %w", path, err)
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: cannot parse cached rate value in %s: %v", entity.ErrCacheCorrupt, path, err)
	}

	return rate, true, nil
}

// Put writes the rate through a temporary file so readers never observe a partial value
func (c *FileRateCache) Put(_ context.Context, key entity.RateKey, rate float64) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := c.Path(key)

	tmp, err := os.CreateTemp(c.dir, key.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create cache file %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.FormatFloat(rate, 'f', -1, 64)); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write cache file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write cache file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot write cache file %s: %w", path, err)
	}

	return nil
}

// currency codes end up in file names
func validateKey(key entity.RateKey) error {
	if strings.ContainsAny(key.From+key.To, `/\`) || key.From == "" || key.To == "" {
		return fmt.Errorf("invalid cache key %q", key.String())
	}
	return nil
}
