package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inshionfu/gpt-mng-web/config"
)

// Client Redis 客户端封装
// 当前仅用于写操作限流，多实例部署时共享计数
type Client struct {
	rdb    goredis.UniversalClient
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// NewFromUniversal 使用已有连接构造（哨兵、集群或内存 Redis）
func NewFromUniversal(rdb goredis.UniversalClient, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── 滑动窗口限流 ──

const rateLimitPrefix = "gptmng:rate_limit:"

// slidingWindowScript 清理窗口外记录、计数、写入在同一脚本内完成，多实例并发时计数不会超限
// 被拒绝的请求不写入记录
var slidingWindowScript = goredis.NewScript(`
local key = KEYS[1]
redis.call('ZREMRANGEBYSCORE', key, '-inf', ARGV[2])
if redis.call('ZCARD', key) >= tonumber(ARGV[3]) then
	return 0
end
redis.call('ZADD', key, ARGV[1], ARGV[5])
redis.call('PEXPIRE', key, ARGV[4])
return 1
`)

// CheckRateLimit 滑动窗口计数：窗口内请求数不超过 limit 时放行
// 有序集合以微秒时间戳为分值记录每次放行的请求
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	ttl := window.Milliseconds()
	if ttl < 1 {
		ttl = 1
	}

	allowed, err := slidingWindowScript.Run(ctx, c.rdb, []string{rateLimitPrefix + key},
		now.UnixMicro(),
		now.Add(-window).UnixMicro(),
		limit,
		ttl,
		strconv.FormatInt(now.UnixMicro(), 10)+"-"+uuid.NewString(),
	).Int()
	if err != nil {
		return false, err
	}
	return allowed == 1, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
