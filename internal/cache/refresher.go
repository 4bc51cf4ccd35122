package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qwiken-app/booking-api/internal/domain/schedule"
)

// RefreshFunc recomputes the slots for one watched staff-day-duration.
type RefreshFunc func(ctx context.Context, staffID, date string, durationMin int) ([]schedule.Slot, error)

type watchKey struct {
	staffID     string
	date        string
	durationMin int
}

// Refresher periodically re-warms recently requested availability
// entries so calendar screens stay fresh between user actions. It is a
// UX mechanism only and carries no correctness weight: the commit
// protocol never reads the cache.
//
// The loop is bound to the context passed to Run and stops with it.
type Refresher struct {
	cache    *AvailabilityCache
	compute  RefreshFunc
	interval time.Duration

	mu      sync.Mutex
	watched map[watchKey]time.Time
}

// watchWindow is how long a staff-day stays on the refresh list after
// its last request.
const watchWindow = 5 * time.Minute

func NewRefresher(c *AvailabilityCache, compute RefreshFunc, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Refresher{
		cache:    c,
		compute:  compute,
		interval: interval,
		watched:  make(map[watchKey]time.Time),
	}
}

// Watch marks a staff-day-duration as recently requested.
func (r *Refresher) Watch(staffID, date string, durationMin int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watched[watchKey{staffID, date, durationMin}] = time.Now()
}

// Run blocks until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	now := time.Now()

	r.mu.Lock()
	keys := make([]watchKey, 0, len(r.watched))
	for k, seen := range r.watched {
		if now.Sub(seen) > watchWindow {
			delete(r.watched, k)
			continue
		}
		keys = append(keys, k)
	}
	r.mu.Unlock()

	for _, k := range keys {
		slots, err := r.compute(ctx, k.staffID, k.date, k.durationMin)
		if err != nil {
			logrus.WithError(err).Debug("availability refresh failed")
			continue
		}
		r.cache.SetSlots(ctx, k.staffID, k.date, k.durationMin, slots)
	}
}
