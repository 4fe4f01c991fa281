package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	Client = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = Client.Close() })
}

func TestResetRateLimitWindow(t *testing.T) {
	setupMiniredis(t)
	repo := &RateLimitRepository{}
	ctx := context.Background()
	base := time.Now()

	// 一小时内前 3 次放行
	for i := 0; i < ResetRateLimit; i++ {
		ok, _, err := repo.Allow(ctx, "user@example.com", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	// 第 4 次拒绝，retry-after 为窗口内最早一次 + 1h
	ok, retryAt, err := repo.Allow(ctx, "user@example.com", base.Add(3*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.WithinDuration(t, base.Add(ResetRateWindow), retryAt, time.Second)

	// 不同邮箱互不影响
	ok, _, err = repo.Allow(ctx, "other@example.com", base.Add(3*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResetRateLimitRolling(t *testing.T) {
	setupMiniredis(t)
	repo := &RateLimitRepository{}
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < ResetRateLimit; i++ {
		ok, _, err := repo.Allow(ctx, "user@example.com", base)
		require.NoError(t, err)
		_ = ok
	}

	// 窗口滚动后恢复放行
	ok, _, err := repo.Allow(ctx, "user@example.com", base.Add(ResetRateWindow+time.Second))
	require.NoError(t, err)
	assert.True(t, ok)
}
