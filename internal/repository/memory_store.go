package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryStoreImpl 进程内 KVStore，用于测试与无 Redis 的本地运行
type memoryStoreImpl struct {
	mu     sync.RWMutex
	values map[string]memoryEntry
	sets   map[string]map[string]struct{}
	now    func() time.Time
}

func NewMemoryStore() KVStore {
	return &memoryStoreImpl{
		values: make(map[string]memoryEntry),
		sets:   make(map[string]map[string]struct{}),
		now:    time.Now,
	}
}

func (s *memoryStoreImpl) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.values[key]
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.value, nil
}

func (s *memoryStoreImpl) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = s.now().Add(expiration)
	}
	s.values[key] = entry
	return nil
}

func (s *memoryStoreImpl) MGet(ctx context.Context, keys []string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		v, _ := s.Get(ctx, key)
		values[i] = v
	}
	return values, nil
}

func (s *memoryStoreImpl) SAdd(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

func (s *memoryStoreImpl) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (s *memoryStoreImpl) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.sets, key)
	return nil
}
