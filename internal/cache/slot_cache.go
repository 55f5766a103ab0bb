package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

// RedisSlotCache keeps the raw slot payload for a selection for a short TTL
// so repeated UI interactions (search, sort, paging, expand) don't hammer
// the scheduler backend. Every cache error degrades to a miss.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration, logger *log.Logger) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl, logger: logger}
}

func slotKey(sel domain.Selection) string {
	return fmt.Sprintf("schedule:slots:%d:%d:%d", sel.MajorID, sel.AcademicYear, sel.Term)
}

func (c *RedisSlotCache) Get(ctx context.Context, sel domain.Selection) ([]domain.ScheduleSlot, bool) {
	raw, err := c.client.Get(ctx, slotKey(sel)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Printf("slot cache get %s: %v", slotKey(sel), err)
		}
		return nil, false
	}

	var slots []domain.ScheduleSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.logger.Printf("slot cache decode %s: %v", slotKey(sel), err)
		return nil, false
	}
	return slots, true
}

func (c *RedisSlotCache) Set(ctx context.Context, sel domain.Selection, slots []domain.ScheduleSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.logger.Printf("slot cache encode %s: %v", slotKey(sel), err)
		return
	}
	if err := c.client.Set(ctx, slotKey(sel), raw, c.ttl).Err(); err != nil {
		c.logger.Printf("slot cache set %s: %v", slotKey(sel), err)
	}
}
