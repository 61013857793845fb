package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// AllowRegister: не больше limit команд /register в минуту на пользователя.
// Nil-приёмник (Redis не сконфигурирован) — пропускаем всех.
func (r *Redis) AllowRegister(ctx context.Context, userID int64, limit int) bool {
	if r == nil || r.C == nil || limit <= 0 {
		return true
	}
	key := fmt.Sprintf("rl:register:%d", userID)
	n, err := r.C.Incr(ctx, key).Result()
	if err != nil {
		// Redis лёг — регистрацию не блокируем
		return true
	}
	if n == 1 {
		r.C.Expire(ctx, key, time.Minute)
	}
	return n <= int64(limit)
}
