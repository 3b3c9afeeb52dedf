package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fad/internal/domain/entity"
)

func TestMemoryStoreStatsExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(30 * time.Second)
	s.now = func() time.Time { return now }

	_, gen, ok := s.GetStats(ctx)
	assert.False(t, ok)

	s.SetStats(ctx, &entity.DashboardStats{PendingVerifications: 3}, gen)
	got, _, ok := s.GetStats(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(3), got.PendingVerifications)

	now = now.Add(30 * time.Second)
	_, _, ok = s.GetStats(ctx)
	assert.False(t, ok)
}

func TestMemoryStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	s.SetStats(ctx, &entity.DashboardStats{OpenComplaints: 1}, 0)
	require.NoError(t, s.InvalidateStats(ctx))

	_, _, ok := s.GetStats(ctx)
	assert.False(t, ok)
}

func TestMemoryStoreDropsCountsFromBeforeInvalidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	_, gen, _ := s.GetStats(ctx)
	require.NoError(t, s.InvalidateStats(ctx))
	s.SetStats(ctx, &entity.DashboardStats{OpenComplaints: 1}, gen)

	_, next, ok := s.GetStats(ctx)
	assert.False(t, ok)
	assert.Equal(t, gen+1, next)

	s.SetStats(ctx, &entity.DashboardStats{OpenComplaints: 2}, next)
	got, _, ok := s.GetStats(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.OpenComplaints)
}

func TestMemoryStoreZeroTTLDisablesCaching(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	s.SetStats(ctx, &entity.DashboardStats{OpenComplaints: 1}, 0)
	_, _, ok := s.GetStats(ctx)
	assert.False(t, ok)
}

func TestMemoryStorePublishReachesSubscribers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	var got []string
	s.Subscribe(ctx, func(e *entity.ActivityLogEntry) { got = append(got, e.ActionType) })
	s.Subscribe(ctx, func(e *entity.ActivityLogEntry) { got = append(got, e.ActionType+"!") })

	require.NoError(t, s.Publish(ctx, &entity.ActivityLogEntry{ActionType: entity.ActionVerifyVendor}))
	assert.Equal(t, []string{"VERIFY_VENDOR", "VERIFY_VENDOR!"}, got)
}
