package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RenderNotifyChannel 是渲染结果的 Redis Pub/Sub 频道。
const RenderNotifyChannel = "resume:pdf:rendered"

const (
	RenderStatusDone   = "done"
	RenderStatusFailed = "failed"
)

// RenderNotifyMessage 描述一次渲染任务的结果。
type RenderNotifyMessage struct {
	Status        string `json:"status"`
	ObjectKey     string `json:"object_key"`
	RequestedBy   string `json:"requested_by,omitempty"`
	CorrelationID string `json:"correlation_id"`
	Bytes         int    `json:"bytes,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Notifier 发布渲染结果。
type Notifier interface {
	Notify(ctx context.Context, msg RenderNotifyMessage) error
}

// RedisNotifier 在 RenderNotifyChannel 上发布结果。
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier 创建基于 Redis Pub/Sub 的 Notifier。
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client, channel: RenderNotifyChannel}
}

func (n *RedisNotifier) Notify(ctx context.Context, msg RenderNotifyMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notify message: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", n.channel, err)
	}
	return nil
}
