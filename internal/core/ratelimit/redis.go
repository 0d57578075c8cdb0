package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Redis is a fixed-window counter shared by every replica using the same Redis.
type Redis struct {
	RDB    *redis.Client
	Max    int
	Window time.Duration
	Prefix string
	now    func() time.Time
}

func NewRedis(rdb *redis.Client, max int, window time.Duration) *Redis {
	return &Redis{RDB: rdb, Max: max, Window: window, Prefix: "rl:", now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	slot := r.now().UnixNano() / int64(r.Window)
	k := r.Prefix + key + ":" + strconv.FormatInt(slot, 10)

	pipe := r.RDB.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= int64(r.Max), nil
}
