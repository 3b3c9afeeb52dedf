package cache

import (
	"context"
	"sync"
	"time"

	"fad/internal/domain/entity"
)

// MemoryStore is the single-instance stand-in for RedisStore.
type MemoryStore struct {
	ttl       time.Duration
	now       func() time.Time
	mutex     sync.RWMutex
	stats      *entity.DashboardStats
	expiresAt  time.Time
	generation int64
	handlers  []func(*entity.ActivityLogEntry)
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl: ttl,
		now: time.Now,
	}
}

func (s *MemoryStore) GetStats(ctx context.Context) (*entity.DashboardStats, int64, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.stats == nil || !s.now().Before(s.expiresAt) {
		return nil, s.generation, false
	}
	copied := *s.stats
	return &copied, s.generation, true
}

func (s *MemoryStore) SetStats(ctx context.Context, stats *entity.DashboardStats, generation int64) {
	if s.ttl <= 0 || stats == nil {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if generation != s.generation {
		return
	}
	copied := *stats
	s.stats = &copied
	s.expiresAt = s.now().Add(s.ttl)
}

func (s *MemoryStore) InvalidateStats(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stats = nil
	s.generation++
	return nil
}

func (s *MemoryStore) Publish(ctx context.Context, entry *entity.ActivityLogEntry) error {
	s.mutex.RLock()
	handlers := append([]func(*entity.ActivityLogEntry){}, s.handlers...)
	s.mutex.RUnlock()

	for _, handle := range handlers {
		handle(entry)
	}
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, handle func(*entity.ActivityLogEntry)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.handlers = append(s.handlers, handle)
}
