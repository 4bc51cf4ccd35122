package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/qwiken-app/booking-api/internal/domain/schedule"
)

// AvailabilityCache keeps generated slot lists in Redis for a short
// TTL. It is a freshness optimisation only; the commit protocol always
// revalidates against the database, so a stale entry can never cause a
// double booking.
//
// Entries are keyed under a per-(staff, date) version counter. A commit
// or cancellation bumps the version, orphaning every cached duration
// for that staff-day at once; orphans expire with their TTL.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func (c *AvailabilityCache) versionKey(staffID, date string) string {
	return fmt.Sprintf("avail:ver:%s:%s", staffID, date)
}

func (c *AvailabilityCache) version(ctx context.Context, staffID, date string) int64 {
	v, err := c.rdb.Get(ctx, c.versionKey(staffID, date)).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *AvailabilityCache) slotKey(staffID, date string, durationMin int, version int64) string {
	return fmt.Sprintf("avail:%s:%s:%d:v%d", staffID, date, durationMin, version)
}

// GetSlots returns the cached slots and true on a hit. Cache errors
// degrade to a miss.
func (c *AvailabilityCache) GetSlots(ctx context.Context, staffID, date string, durationMin int) ([]schedule.Slot, bool) {
	ver := c.version(ctx, staffID, date)

	raw, err := c.rdb.Get(ctx, c.slotKey(staffID, date, durationMin, ver)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []schedule.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) SetSlots(ctx context.Context, staffID, date string, durationMin int, slots []schedule.Slot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	ver := c.version(ctx, staffID, date)
	key := c.slotKey(staffID, date, durationMin, ver)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("availability cache write failed")
	}
}

// Invalidate bumps the staff-day version so every cached duration for
// it misses from now on.
func (c *AvailabilityCache) Invalidate(ctx context.Context, staffID, date string) {
	key := c.versionKey(staffID, date)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		logrus.WithError(err).Debug("availability cache invalidate failed")
		return
	}
	// Version keys must outlive the data keys they gate.
	c.rdb.Expire(ctx, key, 24*time.Hour)
}
