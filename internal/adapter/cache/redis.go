package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/config"
	"github.com/govalues/decimal"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rateKeyPrefix = "rate:"

// RateCache keeps exchange rates in redis with a TTL so repeated conversion
// requests skip the database.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache returns nil (no cache) when no redis address is configured or
// the server is unreachable. Callers treat a nil cache as a permanent miss.
func NewRateCache(ctx context.Context, conf *config.Redis, log *zap.Logger) *RateCache {
	if conf.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, running without rate cache", zap.Error(err))
		return nil
	}

	return &RateCache{client: client, ttl: conf.RateTTL}
}

func (c *RateCache) GetRate(ctx context.Context, code string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, rateKeyPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Decimal{}, false, nil
		}
		return decimal.Decimal{}, false, err
	}

	rate, err := decimal.Parse(val)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("corrupt cached rate for %s: %w", code, err)
	}

	return rate, true, nil
}

func (c *RateCache) SetRate(ctx context.Context, code string, rate decimal.Decimal) error {
	return c.client.Set(ctx, rateKeyPrefix+code, rate.String(), c.ttl).Err()
}

func (c *RateCache) DeleteRate(ctx context.Context, code string) error {
	return c.client.Del(ctx, rateKeyPrefix+code).Err()
}

func (c *RateCache) Close() error {
	return c.client.Close()
}
