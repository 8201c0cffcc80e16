// Package trial tracks when a visitor (keyed by IP) first used the chat so
// anonymous use can be cut off after a fixed window.
package trial

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// firstSeenRetention bounds how long a first-seen mark survives; it must
// outlive any sensible trial window or the trial would silently restart.
const firstSeenRetention = 30 * 24 * time.Hour

type Status struct {
	FirstSeen time.Time
	EndsAt    time.Time
	Expired   bool
}

type Gate interface {
	// Check records the visitor on first sight and reports whether the window has passed.
	Check(ctx context.Context, visitor string) (Status, error)
	// Peek reports the visitor's window without starting it. ok is false for
	// a visitor that was never checked.
	Peek(ctx context.Context, visitor string) (status Status, ok bool, err error)
}

type RedisGate struct {
	rdb    redis.Cmdable
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisGate(rdb redis.Cmdable, window time.Duration) *RedisGate {
	return &RedisGate{
		rdb:    rdb,
		window: window,
		prefix: "trial:first_seen:",
		now:    time.Now,
	}
}

func (g *RedisGate) Check(ctx context.Context, visitor string) (Status, error) {
	now := g.now()
	key := g.prefix + visitor

	created, err := g.rdb.SetNX(ctx, key, now.Unix(), firstSeenRetention).Result()
	if err != nil {
		return Status{}, fmt.Errorf("trial: mark first seen: %w", err)
	}
	if created {
		return statusFor(now, now, g.window), nil
	}

	raw, err := g.rdb.Get(ctx, key).Result()
	if err != nil {
		return Status{}, fmt.Errorf("trial: read first seen: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Status{}, fmt.Errorf("trial: corrupt first seen %q: %w", raw, err)
	}

	return statusFor(time.Unix(unix, 0), now, g.window), nil
}

func (g *RedisGate) Peek(ctx context.Context, visitor string) (Status, bool, error) {
	raw, err := g.rdb.Get(ctx, g.prefix+visitor).Result()
	if errors.Is(err, redis.Nil) {
		return Status{}, false, nil
	}
	if err != nil {
		return Status{}, false, fmt.Errorf("trial: read first seen: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Status{}, false, fmt.Errorf("trial: corrupt first seen %q: %w", raw, err)
	}
	return statusFor(time.Unix(unix, 0), g.now(), g.window), true, nil
}

// MemoryGate is the single-instance fallback used when Redis is unreachable.
type MemoryGate struct {
	mu     sync.Mutex
	seen   *cache.Cache
	window time.Duration
	now    func() time.Time
}

func NewMemoryGate(window time.Duration) *MemoryGate {
	return &MemoryGate{
		seen:   cache.New(firstSeenRetention, time.Hour),
		window: window,
		now:    time.Now,
	}
}

func (g *MemoryGate) Check(ctx context.Context, visitor string) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if x, found := g.seen.Get(visitor); found {
		return statusFor(x.(time.Time), now, g.window), nil
	}
	g.seen.Set(visitor, now, cache.DefaultExpiration)
	return statusFor(now, now, g.window), nil
}

func (g *MemoryGate) Peek(ctx context.Context, visitor string) (Status, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	x, found := g.seen.Get(visitor)
	if !found {
		return Status{}, false, nil
	}
	return statusFor(x.(time.Time), g.now(), g.window), true, nil
}

func statusFor(firstSeen, now time.Time, window time.Duration) Status {
	ends := firstSeen.Add(window)
	return Status{
		FirstSeen: firstSeen,
		EndsAt:    ends,
		Expired:   window > 0 && now.After(ends),
	}
}
