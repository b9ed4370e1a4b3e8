// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Hudson5577/Hackathon-2025/models"
)

const (
	keyGeneration    = "election:results:gen"
	keyResultsPrefix = "election:results:"
)

// ResultsCache caches the aggregated election results in Redis.
type ResultsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewResultsCache returns a new ResultsCache.
func NewResultsCache(rdb *redis.Client, ttl time.Duration) *ResultsCache {
	return &ResultsCache{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func resultsKey(gen int64) string {
	return keyResultsPrefix + strconv.FormatInt(gen, 10)
}

// Generation returns the current results generation, 0 if never invalidated.
func (c *ResultsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return gen, nil
}

// GetResults returns cached results for gen or nil on a miss.
func (c *ResultsCache) GetResults(ctx context.Context, gen int64) (*models.ResultsResponse, error) {
	b, err := c.rdb.Get(ctx, resultsKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var res models.ResultsResponse
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetResults stores results under gen with the configured TTL.
func (c *ResultsCache) SetResults(ctx context.Context, gen int64, res *models.ResultsResponse) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, resultsKey(gen), b, c.ttl).Err()
}

// Invalidate advances the generation; entries of older generations are
// never read again and expire by TTL.
func (c *ResultsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, keyGeneration).Err()
}
