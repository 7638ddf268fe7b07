package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/model"
)

const (
	trackerKey     = "qada:tracker"
	lastSummaryKey = "qada:last_summary_date"
)

// Cache is the device-local store the tracker is serialized to after every
// mutation. A missing or malformed record is never an error, only "no cached
// data".
type Cache struct {
	rdb *redis.Client
}

func New(address, username, password string) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     address,
			Username: username,
			Password: password,
			DB:       0,
		}),
	}
}

// NewWithClient wraps an existing client, used by tests with miniredis-style
// fakes or a separate DB index.
func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// LoadTracker returns the cached tracker, or nil when nothing usable is
// stored.
func (c *Cache) LoadTracker(ctx context.Context) (*model.Tracker, error) {
	payload, err := c.rdb.Get(ctx, trackerKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t model.Tracker
	if err := json.Unmarshal(payload, &t); err != nil {
		log.Warn().Err(err).Msg("discarding malformed cached tracker")
		return nil, nil
	}
	return &t, nil
}

// SaveTracker overwrites the cached tracker record.
func (c *Cache) SaveTracker(ctx context.Context, t *model.Tracker) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, trackerKey, payload, 0).Err()
}

// LastSummaryDate returns the calendar day (2006-01-02) a weekly summary was
// last delivered, or "" when none was.
func (c *Cache) LastSummaryDate(ctx context.Context) (string, error) {
	day, err := c.rdb.Get(ctx, lastSummaryKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return day, err
}

// SetLastSummaryDate records the day a summary went out.
func (c *Cache) SetLastSummaryDate(ctx context.Context, day string) error {
	return c.rdb.Set(ctx, lastSummaryKey, day, 0).Err()
}

// Ping verifies connectivity on startup.
func (c *Cache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}
