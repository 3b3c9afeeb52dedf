package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionSubmitReview   = "submit_review"
	ActionFileComplaint  = "file_complaint"
	ActionUploadEvidence = "upload_evidence"

	// IP scoped buckets. Report uses the fallback limit.
	ActionAuth   = "auth"
	ActionReport = "report"
)

// Limit is a token bucket shape: Burst tokens, refilled one per Every.
type Limit struct {
	Burst int
	Every time.Duration
}

// DefaultLimits are the per-user action budgets.
var DefaultLimits = map[string]Limit{
	// 5 reviews per hour
	ActionSubmitReview: {Burst: 5, Every: 12 * time.Minute},
	// 3 complaints per hour
	ActionFileComplaint: {Burst: 3, Every: 20 * time.Minute},
	// bursts of 10 evidence files, then one a minute
	ActionUploadEvidence: {Burst: 10, Every: time.Minute},
	// 5 sign-in attempts per minute
	ActionAuth: {Burst: 5, Every: 12 * time.Second},
}

// PerMinute spreads n requests evenly over a minute with a burst of n.
func PerMinute(n int) Limit {
	if n <= 0 {
		n = 60
	}
	return Limit{Burst: n, Every: time.Minute / time.Duration(n)}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key and action.
type RateLimiter struct {
	buckets  map[string]*bucket
	limits   map[string]Limit
	fallback Limit
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(limits map[string]Limit, fallback Limit) *RateLimiter {
	if limits == nil {
		limits = DefaultLimits
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		limits:   limits,
		fallback: fallback,
		now:      time.Now,
	}
}

// Allow consumes a token for key and action. When the bucket is empty it
// returns false and how long until the next token.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := rl.now()
	b := rl.bucketFor(key, action, now)

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) bucketFor(key, action string, now time.Time) *bucket {
	id := key + ":" + action

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, ok := rl.buckets[id]
	if !ok {
		limit, known := rl.limits[action]
		if !known {
			limit = rl.fallback
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Every(limit.Every), limit.Burst)}
		rl.buckets[id] = b
	}
	b.lastSeen = now
	return b
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for id, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, id)
		}
	}
}

func (rl *RateLimiter) Size() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.buckets)
}

// StartCleanupRoutine prunes idle buckets every 30 minutes until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-ctx.Done():
				return
			}
		}
	}()
}
