package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// grids известные варианты сетки, инвалидируются вместе
var grids = []string{"step", "hourly"}

// AvailabilityCache кеш ответов о доступных слотах в Redis
//
// Кеш best-effort: ошибки Redis логируются и не прерывают запрос,
// источником истины остаётся БД. Ключ - (ресторан, дата, сетка),
// запись инвалидируется при любой записи бронирования на эту дату.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// New создает кеш доступности поверх клиента Redis
func New(client *redis.Client, ttl time.Duration, log Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, log: log}
}

// Get возвращает закешированный ответ или (nil, false)
func (c *AvailabilityCache) Get(ctx context.Context, restaurantID int64, date string, grid string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key(restaurantID, date, grid)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("availability cache: get failed for restaurant=%d date=%s: %v", restaurantID, date, err)
		}
		return nil, false
	}
	return payload, true
}

// Set сохраняет ответ с TTL
func (c *AvailabilityCache) Set(ctx context.Context, restaurantID int64, date string, grid string, payload []byte) {
	if err := c.client.Set(ctx, key(restaurantID, date, grid), payload, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache: set failed for restaurant=%d date=%s: %v", restaurantID, date, err)
	}
}

// Invalidate удаляет закешированные ответы ресторана на дату (обе сетки)
func (c *AvailabilityCache) Invalidate(ctx context.Context, restaurantID int64, date string) {
	keys := make([]string, 0, len(grids))
	for _, grid := range grids {
		keys = append(keys, key(restaurantID, date, grid))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("availability cache: invalidate failed for restaurant=%d date=%s: %v", restaurantID, date, err)
	}
}

func key(restaurantID int64, date string, grid string) string {
	return fmt.Sprintf("availability:%d:%s:%s", restaurantID, date, grid)
}
