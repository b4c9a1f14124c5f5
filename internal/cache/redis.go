// Package cache 将组装好的简历文档缓存在 Redis 中。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"resumeapi/internal/config"
	"resumeapi/internal/metrics"
)

// FullResumeKey 保存根文档的 JSON。
const FullResumeKey = "resume:full"

// FullResumeGenKey 是文档的代数计数器，每次失效时自增。
const FullResumeGenKey = "resume:full:gen"

// NewClient 连接 Redis 并通过 PING 校验连接。
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// ResumeCache 是单个 JSON 文档的旁路缓存。
type ResumeCache struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
	logger *slog.Logger
}

// NewResumeCache 在 client 为 nil 时返回 nil，调用方可直接透传。
func NewResumeCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ResumeCache {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumeCache{client: client, key: FullResumeKey, genKey: FullResumeGenKey, ttl: ttl, logger: logger}
}

// GetJSON 读取文档并解码到 dest，返回是否命中。
func (c *ResumeCache) GetJSON(ctx context.Context, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 按配置的 TTL 无条件写入文档。
func (c *ResumeCache) SetJSON(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, c.ttl).Err()
}

// errStaleGeneration 表示读取期间发生过失效，结果不得写回。
var errStaleGeneration = errors.New("resume cache generation changed")

// generation 读取当前代数，键不存在时为 0。
func (c *ResumeCache) generation(ctx context.Context, cmd redis.Cmdable) (int64, error) {
	gen, err := cmd.Get(ctx, c.genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// storeIfCurrent 仅在代数仍为 gen 时写入文档。WATCH 保证检查与写入之间的失效会让 EXEC 失败。
func (c *ResumeCache) storeIfCurrent(ctx context.Context, gen int64, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, b, c.ttl)
			return nil
		})
		return err
	}, c.genKey)
}

// CacheAside 优先从 Redis 读取 dest，未命中时调用 fetch 填充并回写。
// Redis 故障降级为直接 fetch，只返回 fetch 的错误。fetch 期间发生失效时不回写。
func (c *ResumeCache) CacheAside(ctx context.Context, dest any, fetch func() error) error {
	gen, genErr := c.generation(ctx, c.client)

	found, err := c.GetJSON(ctx, dest)
	switch {
	case err != nil:
		metrics.ObserveResumeCache("error")
		c.logger.Warn("resume cache read failed", slog.Any("error", err))
	case found:
		metrics.ObserveResumeCache("hit")
		return nil
	default:
		metrics.ObserveResumeCache("miss")
	}

	if err := fetch(); err != nil {
		return err
	}

	if genErr != nil {
		c.logger.Warn("resume cache generation read failed", slog.Any("error", genErr))
		return nil
	}
	switch err := c.storeIfCurrent(ctx, gen, dest); {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("resume cache write skipped after concurrent invalidation")
	default:
		c.logger.Warn("resume cache write failed", slog.Any("error", err))
	}
	return nil
}

// Invalidate 自增代数并删除缓存文档。
func (c *ResumeCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	return err
}
