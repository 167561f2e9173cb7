package service

import (
	"context"
	log "log/slog"
	"sync"
	"time"
)

// Snapshot 某个榜单维度的一次计算结果
type Snapshot struct {
	Data       interface{}
	ComputedAt time.Time
}

// SnapshotCache 进程内快照缓存，按 维度|参数 作为 key。
// 生命周期 Absent -> Fresh -> Stale：过期后的下一次查询触发重算，
// 重算失败则继续返回上一份快照（可用性优先于新鲜度）。
// 并发未命中可能触发多次重算，结果等价，不加锁排队
type SnapshotCache struct {
	mu       sync.RWMutex
	entries  map[string]*Snapshot
	interval time.Duration
	now      func() time.Time
}

func NewSnapshotCache(interval time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries:  make(map[string]*Snapshot),
		interval: interval,
		now:      time.Now,
	}
}

// IsStale 过期判定：now - computedAt > updateInterval
func (c *SnapshotCache) IsStale(computedAt time.Time, now time.Time) bool {
	return now.Sub(computedAt) > c.interval
}

func (c *SnapshotCache) get(key string) *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key]
}

// GetOrCompute 命中且未过期直接返回；否则重算并缓存。
// 重算失败时回退到最后一份成功的快照，从未算出过才返回错误
func (c *SnapshotCache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (interface{}, error)) (*Snapshot, error) {
	now := c.now()

	if snap := c.get(key); snap != nil && !c.IsStale(snap.ComputedAt, now) {
		return snap, nil
	}

	data, err := compute(ctx)
	if err != nil {
		if snap := c.get(key); snap != nil {
			log.WarnContext(ctx, "snapshot refresh failed, serving stale", "key", key, "err", err)
			return snap, nil
		}
		return nil, err
	}

	snap := &Snapshot{Data: data, ComputedAt: now}
	c.mu.Lock()
	c.entries[key] = snap
	c.mu.Unlock()

	return snap, nil
}
