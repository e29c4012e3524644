package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Policy is a fixed-window budget for one action.
type Policy struct {
	Max    int
	Window time.Duration
}

// Published budgets for the site's sensitive and public actions.
var (
	LoginPolicy       = Policy{Max: 5, Window: 15 * time.Minute}
	TestimonialPolicy = Policy{Max: 3, Window: 60 * time.Minute}
	NewsletterPolicy  = Policy{Max: 5, Window: 60 * time.Minute}
	PublicReadPolicy  = Policy{Max: 120, Window: time.Minute}
)

// Limiter counts hits per key within a fixed window. Keys are
// "action:clientIP" so endpoints and clients do not share budgets.
type Limiter interface {
	Allow(ctx context.Context, key string, p Policy) (bool, error)
}

// Key builds the canonical limiter key for an action and client identity.
func Key(action, clientIP string) string {
	return action + ":" + clientIP
}

type window struct {
	count int
	start time.Time
}

// MemoryLimiter is a process-local fixed-window counter. It only limits
// per process and resets on restart; multi-process deployments should
// use RedisLimiter instead.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, p Policy) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= p.Window {
		l.windows[key] = &window{count: 1, start: now}
		return true, nil
	}

	w.count++
	return w.count <= p.Max, nil
}
