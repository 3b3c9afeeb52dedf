package usecase

import (
	"context"
	"time"

	"fad/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	SetRole(ctx context.Context, uid, role string) error
	VerifyToken(ctx context.Context, idToken string) (*entity.AuthToken, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error)
	RefreshIDToken(ctx context.Context, refreshToken string) (string, string, error)
}

// StatsCache holds the admin dashboard counts between polls. Every
// invalidation bumps a generation. SetStats only stores counts computed
// under the generation GetStats reported, so a transition that lands while
// counting is never hidden by the cache.
type StatsCache interface {
	GetStats(ctx context.Context) (stats *entity.DashboardStats, generation int64, ok bool)
	SetStats(ctx context.Context, stats *entity.DashboardStats, generation int64)
	InvalidateStats(ctx context.Context) error
}

// ActivityPublisher pushes activity entries to live admin clients.
type ActivityPublisher interface {
	Publish(ctx context.Context, entry *entity.ActivityLogEntry) error
}

// ActionLimiter throttles user actions per key.
type ActionLimiter interface {
	Allow(key, action string) (bool, time.Duration)
}

// timeNow is truncated to the precision Firestore keeps so that updated_at
// values returned to clients compare equal to the stored ones.
var timeNow = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
