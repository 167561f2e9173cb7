package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCacheFreshHit(t *testing.T) {
	ctx := context.Background()
	cache := NewSnapshotCache(5 * time.Minute)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	current := base
	cache.now = func() time.Time { return current }

	computed := 0
	compute := func(ctx context.Context) (interface{}, error) {
		computed++
		return computed, nil
	}

	first, err := cache.GetOrCompute(ctx, "vines", compute)
	require.NoError(t, err)

	// 间隔内的查询复用同一份快照，ComputedAt 不变
	current = base.Add(4 * time.Minute)
	second, err := cache.GetOrCompute(ctx, "vines", compute)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, computed)
	assert.True(t, second.ComputedAt.Equal(base))
}

func TestSnapshotCacheRecomputeWhenStale(t *testing.T) {
	ctx := context.Background()
	cache := NewSnapshotCache(5 * time.Minute)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	current := base
	cache.now = func() time.Time { return current }

	computed := 0
	compute := func(ctx context.Context) (interface{}, error) {
		computed++
		return computed, nil
	}

	_, err := cache.GetOrCompute(ctx, "vines", compute)
	require.NoError(t, err)

	// 恰好到期仍视为新鲜，超过才重算
	current = base.Add(5 * time.Minute)
	snap, err := cache.GetOrCompute(ctx, "vines", compute)
	require.NoError(t, err)
	assert.Equal(t, 1, computed)

	current = base.Add(5*time.Minute + time.Second)
	snap, err = cache.GetOrCompute(ctx, "vines", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, computed)
	assert.Equal(t, 2, snap.Data.(int))
	assert.True(t, snap.ComputedAt.Equal(current))
}

func TestSnapshotCacheStaleFallbackOnFailure(t *testing.T) {
	ctx := context.Background()
	cache := NewSnapshotCache(time.Minute)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	current := base
	cache.now = func() time.Time { return current }

	_, err := cache.GetOrCompute(ctx, "viners", func(ctx context.Context) (interface{}, error) {
		return "good", nil
	})
	require.NoError(t, err)

	// 重算失败回退到上一份快照，不向调用方暴露错误
	current = base.Add(2 * time.Minute)
	snap, err := cache.GetOrCompute(ctx, "viners", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("store down")
	})
	require.NoError(t, err)
	assert.Equal(t, "good", snap.Data)
	assert.True(t, snap.ComputedAt.Equal(base))
}

func TestSnapshotCacheErrorWhenNeverComputed(t *testing.T) {
	cache := NewSnapshotCache(time.Minute)

	snap, err := cache.GetOrCompute(context.Background(), "velocity", func(ctx context.Context) (interface{}, error) {
		return nil, ErrStoreUnavailable
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Nil(t, snap)
}

func TestSnapshotCacheKeysIndependent(t *testing.T) {
	ctx := context.Background()
	cache := NewSnapshotCache(time.Minute)

	a, err := cache.GetOrCompute(ctx, "hashtag|bitcoin|1h", func(ctx context.Context) (interface{}, error) {
		return "a", nil
	})
	require.NoError(t, err)

	b, err := cache.GetOrCompute(ctx, "hashtag|bitcoin|24h", func(ctx context.Context) (interface{}, error) {
		return "b", nil
	})
	require.NoError(t, err)

	assert.Equal(t, "a", a.Data)
	assert.Equal(t, "b", b.Data)
}
