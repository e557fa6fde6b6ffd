package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"rollcall/internal/attendance/models"
	id "rollcall/pkg/domain"
	"rollcall/pkg/platform/sentinel"
)

// RedisCache is a read-through decorator over an underlying Store. The query
// views (status, percentage, calendar) all read the full aggregate, so the
// whole record is cached as one JSON blob per owner and dropped on any write.
//
// Cache failures degrade to the underlying store; they are logged, never
// surfaced. A stale read is bounded by the TTL and by write-path
// invalidation, and every mutation still goes through the underlying store's
// conditional semantics, so the cache cannot weaken the close invariant.
type RedisCache struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(next Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{next: next, client: client, ttl: ttl, logger: logger}
}

func recordKey(owner id.OwnerID) string { return "attendance:record:" + owner.String() }

func (c *RedisCache) FindRecord(ctx context.Context, owner id.OwnerID) (*models.AttendanceRecord, error) {
	payload, err := c.client.Get(ctx, recordKey(owner)).Bytes()
	if err == nil {
		rec := &models.AttendanceRecord{}
		if err := json.Unmarshal(payload, rec); err == nil {
			return rec, nil
		}
		// Unreadable entry: drop it and fall through to the store.
		c.client.Del(ctx, recordKey(owner))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "attendance cache read failed", "error", err)
	}

	rec, err := c.next.FindRecord(ctx, owner)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, owner, rec)
	return rec, nil
}

func (c *RedisCache) FindDayRecord(ctx context.Context, owner id.OwnerID, date string) (*models.DayRecord, error) {
	return c.next.FindDayRecord(ctx, owner, date)
}

func (c *RedisCache) LatestDay(ctx context.Context, owner id.OwnerID) (string, *models.DayRecord, error) {
	return c.next.LatestDay(ctx, owner)
}

func (c *RedisCache) UpsertDayRecord(ctx context.Context, owner id.OwnerID, monthLabel string, day models.DayRecord) error {
	if err := c.next.UpsertDayRecord(ctx, owner, monthLabel, day); err != nil {
		return err
	}
	c.invalidate(ctx, owner)
	return nil
}

func (c *RedisCache) CloseDayRecord(ctx context.Context, owner id.OwnerID, date string, exitTime string) error {
	if err := c.next.CloseDayRecord(ctx, owner, date, exitTime); err != nil {
		return err
	}
	c.invalidate(ctx, owner)
	return nil
}

func (c *RedisCache) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return sentinel.ErrUnavailable
	}
	if hc, ok := c.next.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}

func (c *RedisCache) fill(ctx context.Context, owner id.OwnerID, rec *models.AttendanceRecord) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, recordKey(owner), payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "attendance cache fill failed", "error", err)
	}
}

func (c *RedisCache) invalidate(ctx context.Context, owner id.OwnerID) {
	if err := c.client.Del(ctx, recordKey(owner)).Err(); err != nil {
		c.logger.WarnContext(ctx, "attendance cache invalidation failed", "error", err)
	}
}
