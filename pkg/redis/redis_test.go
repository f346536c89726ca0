package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewFromUniversal(rdb, zap.NewNop()), mr
}

func TestCheckRateLimit_WithinWindow(t *testing.T) {
	c, mr := setupTestClient(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := c.CheckRateLimit(ctx, "ip:/mmus", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "第%d次请求应放行", i+1)
	}

	ok, err := c.CheckRateLimit(ctx, "ip:/mmus", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "超过上限应拒绝")

	members, err := mr.ZMembers(rateLimitPrefix + "ip:/mmus")
	require.NoError(t, err)
	assert.Len(t, members, 2, "被拒绝的请求不应写入记录")
	assert.True(t, mr.TTL(rateLimitPrefix+"ip:/mmus") > 0, "计数键应设置过期时间")
}

func TestCheckRateLimit_SeparateKeys(t *testing.T) {
	c, _ := setupTestClient(t)
	ctx := context.Background()

	for _, key := range []string{"ip:/a", "ip:/b"} {
		ok, err := c.CheckRateLimit(ctx, key, 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "不同 key 应分别计数: %s", key)
	}
}

func TestCheckRateLimit_WindowSlides(t *testing.T) {
	c, _ := setupTestClient(t)
	ctx := context.Background()
	window := 50 * time.Millisecond

	ok, err := c.CheckRateLimit(ctx, "ip:/w", 1, window)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.CheckRateLimit(ctx, "ip:/w", 1, window)
	require.NoError(t, err)
	require.False(t, ok)

	time.Sleep(2 * window)

	ok, err = c.CheckRateLimit(ctx, "ip:/w", 1, window)
	require.NoError(t, err)
	assert.True(t, ok, "窗口滑过后应重新放行")
}

func TestCheckRateLimit_ConcurrentNeverExceedsLimit(t *testing.T) {
	c, _ := setupTestClient(t)
	ctx := context.Background()
	const limit = 3

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := c.CheckRateLimit(ctx, "ip:/shared", limit, time.Minute); err == nil && ok {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(limit), admitted.Load(), "并发请求放行数应恰好等于上限")
}

func TestCheckRateLimit_ServerDown(t *testing.T) {
	c, mr := setupTestClient(t)
	mr.Close()

	_, err := c.CheckRateLimit(context.Background(), "ip:/down", 1, time.Minute)
	assert.Error(t, err)
}
