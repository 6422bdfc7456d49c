// Package cache keeps the listing filter choices (skills, cities, companies)
// in redis so listing pages do not re-read three catalog tables per request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const optionsKey = "job-portal:filter-options"

// FilterOptions are the choices a listing page offers.
type FilterOptions struct {
	Skills    []models.Option `json:"skills"`
	Cities    []models.Option `json:"cities"`
	Companies []models.Option `json:"companies"`
}

// NewRedisClient parses url and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Options reads filter options through redis. A nil client reads the
// database every time.
type Options struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewOptions(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *Options {
	return &Options{db: db, rdb: rdb, ttl: ttl}
}

// Get never fails because of redis; cache errors are logged and the
// database answers instead.
func (o *Options) Get(ctx context.Context) (*FilterOptions, error) {
	if o.rdb != nil {
		raw, err := o.rdb.Get(ctx, optionsKey).Bytes()
		switch {
		case err == nil:
			var opts FilterOptions
			if err := json.Unmarshal(raw, &opts); err == nil {
				return &opts, nil
			}
			slog.Warn("discarding unreadable filter options cache entry")
		case !errors.Is(err, redis.Nil):
			slog.Warn("filter options cache read failed", "error", err)
		}
	}

	opts, err := Load(ctx, o.db)
	if err != nil {
		return nil, err
	}

	if o.rdb != nil {
		if raw, err := json.Marshal(opts); err == nil {
			if err := o.rdb.Set(ctx, optionsKey, raw, o.ttl).Err(); err != nil {
				slog.Warn("filter options cache write failed", "error", err)
			}
		}
	}
	return opts, nil
}

// Invalidate drops the cached options after a catalog write.
func (o *Options) Invalidate(ctx context.Context) {
	if o.rdb == nil {
		return
	}
	if err := o.rdb.Del(ctx, optionsKey).Err(); err != nil {
		slog.Warn("filter options cache invalidate failed", "error", err)
	}
}

// Load reads the options straight from the database, sorted by name.
func Load(ctx context.Context, db *gorm.DB) (*FilterOptions, error) {
	opts := &FilterOptions{}
	for _, src := range []struct {
		model interface{}
		dst   *[]models.Option
	}{
		{&models.Skill{}, &opts.Skills},
		{&models.City{}, &opts.Cities},
		{&models.Company{}, &opts.Companies},
	} {
		if err := db.WithContext(ctx).Model(src.model).
			Select("id", "name").
			Order("name").
			Scan(src.dst).Error; err != nil {
			return nil, fmt.Errorf("load filter options: %w", err)
		}
		if *src.dst == nil {
			*src.dst = []models.Option{}
		}
	}
	return opts, nil
}
