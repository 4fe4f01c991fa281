package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ResetRatePrefix = "pwdreset:rl"
	ResetRateWindow = time.Hour
	ResetRateLimit  = 3
)

// RateLimitRepository 密码重置限流：按归一化 email，滚动一小时窗口内最多 3 次。
// ZSET 里存每次请求的时间戳，lua 原子做清理+计数+写入
type RateLimitRepository struct{}

func rateKey(email string) string {
	return fmt.Sprintf("%s:%s", ResetRatePrefix, email)
}

// Allow 返回是否放行；拒绝时给出可重试时间（窗口内最早一次请求 + 1h）
func (r *RateLimitRepository) Allow(ctx context.Context, email string, now time.Time) (bool, time.Time, error) {
	script := `
local cutoff = tonumber(ARGV[1]) - tonumber(ARGV[2])
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", cutoff)
local n = redis.call("ZCARD", KEYS[1])
if n >= tonumber(ARGV[3]) then
  local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
  return {0, oldest[2]}
end
redis.call("ZADD", KEYS[1], ARGV[1], ARGV[4])
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return {1, 0}
`
	nowMs := now.UnixMilli()
	windowMs := ResetRateWindow.Milliseconds()
	// member 带随机后缀，同一毫秒的多次请求不会在 ZSET 里收拢成一条
	member := fmt.Sprintf("%d-%s", nowMs, uuid.NewString())
	res, err := Client.Eval(ctx, script, []string{rateKey(email)}, nowMs, windowMs, ResetRateLimit, member).Slice()
	if err != nil {
		return false, time.Time{}, err
	}
	allowed, _ := res[0].(int64)
	if allowed == 1 {
		return true, time.Time{}, nil
	}
	var oldestMs int64
	switch v := res[1].(type) {
	case int64:
		oldestMs = v
	case string:
		fmt.Sscanf(v, "%d", &oldestMs)
	}
	retryAt := time.UnixMilli(oldestMs).Add(ResetRateWindow)
	return false, retryAt, nil
}
