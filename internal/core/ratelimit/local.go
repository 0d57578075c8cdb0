package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// Local keeps one token bucket per key in process memory. Buckets idle for longer than
// the refill time of a full burst are dropped.
type Local struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	r       rate.Limit
	burst   int
	idle    time.Duration
	hits    int
}

func NewLocal(r rate.Limit, burst int) *Local {
	idle := time.Minute
	if r > 0 {
		if d := time.Duration(float64(burst) / float64(r) * float64(time.Second)); d > idle {
			idle = d
		}
	}
	return &Local{buckets: map[string]*bucket{}, r: r, burst: burst, idle: idle}
}

// NewWindow approximates max hits per window with a bucket of size max.
func NewWindow(max int, window time.Duration) *Local {
	return NewLocal(rate.Limit(float64(max)/window.Seconds()), max)
}

func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.hits++
	if l.hits%1024 == 0 {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > l.idle {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.r, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1), nil
}
