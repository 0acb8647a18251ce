package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProgressStore 管理 Redis 中的 slot 解码状态记录（幂等控制）。
// 同一 slot 可能因重连被重复推送，状态记录保证只发布一次。
type RedisProgressStore struct {
	rdb *redis.Client
}

const (
	slotKeyPrefix = "decode:progress:slot"
	slotTTL       = 3 * 24 * time.Hour
)

func NewRedisProgressStore(rdb *redis.Client) *RedisProgressStore {
	return &RedisProgressStore{rdb: rdb}
}

func (r *RedisProgressStore) key(slot uint64) string {
	return fmt.Sprintf("%s:%d", slotKeyPrefix, slot)
}

// GetSlotStatus 获取 slot 的状态（Unknown / Processed / Invalid / Pending）
func (r *RedisProgressStore) GetSlotStatus(ctx context.Context, slot uint64) (SlotStatus, error) {
	val, err := r.rdb.Get(ctx, r.key(slot)).Int()
	switch {
	case err == redis.Nil:
		return SlotUnknown, nil
	case err != nil:
		return SlotUnknown, fmt.Errorf("redis get error: %w", err)
	case val == int(SlotProcessed):
		return SlotProcessed, nil
	case val == int(SlotInvalid):
		return SlotInvalid, nil
	case val == int(SlotPending):
		return SlotPending, nil
	default:
		return SlotUnknown, nil // 容错处理
	}
}

// MarkSlotStatus 通用设置 slot 的状态
func (r *RedisProgressStore) MarkSlotStatus(ctx context.Context, slot uint64, status SlotStatus) error {
	return r.rdb.Set(ctx, r.key(slot), int(status), slotTTL).Err()
}

// MarkSlotProcessed 标记 slot 为已处理
func (r *RedisProgressStore) MarkSlotProcessed(ctx context.Context, slot uint64) error {
	return r.MarkSlotStatus(ctx, slot, SlotProcessed)
}

// MarkSlotInvalid 标记 slot 为无效（结构失败、跳过）
func (r *RedisProgressStore) MarkSlotInvalid(ctx context.Context, slot uint64) error {
	return r.MarkSlotStatus(ctx, slot, SlotInvalid)
}

// MarkSlotPending 标记 slot 为正在处理（幂等控制）
func (r *RedisProgressStore) MarkSlotPending(ctx context.Context, slot uint64) error {
	return r.MarkSlotStatus(ctx, slot, SlotPending)
}
