package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/studiobooking/config"
	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the per-date booking lists so dashboard reads do not hit
// postgres on every poll. Entries are dropped on every change signal and
// expire on their own as a fallback.
type RedisCache struct {
	client *redis.Client
	dayTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, dayTTL time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		dayTTL: dayTTL,
	}
}

func (c *RedisCache) GetDay(ctx context.Context, date string) ([]domain.Booking, error) {
	data, err := c.client.Get(ctx, dayKey(date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *RedisCache) SetDay(ctx context.Context, date string, bookings []domain.Booking) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dayKey(date), payload, c.dayTTL).Err()
}

func (c *RedisCache) InvalidateDay(ctx context.Context, date string) error {
	return c.client.Del(ctx, dayKey(date)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func dayKey(date string) string {
	return fmt.Sprintf("cache:bookings:%s", date)
}
