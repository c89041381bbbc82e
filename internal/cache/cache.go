// Package cache 使用 Redis 缓存最近一次优化得到的排班
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paiban/nurseplan/internal/config"
	"github.com/paiban/nurseplan/pkg/logger"
	"github.com/paiban/nurseplan/pkg/report"
)

// LatestKey 最新排班的缓存键
const LatestKey = "nurseplan:roster:latest"

// NewClient 按配置创建客户端并检查连通性
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("Redis 连接测试失败: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("Redis 连接成功")
	return rdb, nil
}

// RosterCache 最新排班缓存
type RosterCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRosterCache 创建缓存，ttl 为 0 时不过期
func NewRosterCache(rdb *redis.Client, ttl time.Duration) *RosterCache {
	return &RosterCache{rdb: rdb, ttl: ttl}
}

// SetLatest 写入最新排班
func (c *RosterCache) SetLatest(ctx context.Context, v *report.View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化排班失败: %w", err)
	}
	if err := c.rdb.Set(ctx, LatestKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// GetLatest 读取最新排班，未命中时返回 nil
func (c *RosterCache) GetLatest(ctx context.Context) (*report.View, error) {
	data, err := c.rdb.Get(ctx, LatestKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取缓存失败: %w", err)
	}

	var v report.View
	if err := json.Unmarshal(data, &v); err != nil {
		// 损坏的条目视为未命中
		logger.Warn().Err(err).Str("key", LatestKey).Msg("缓存内容无法解析")
		return nil, nil
	}
	return &v, nil
}

// Invalidate 删除最新排班
func (c *RosterCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, LatestKey).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// Health 健康检查
func (c *RosterCache) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
