package usecase

import (
	"context"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/logger"
)

const recentActivityLimit = 10

// ActivityUseCase writes the admin audit trail and fans it out to live clients.
type ActivityUseCase struct {
	activityRepo repository.ActivityLogRepository
	publisher    ActivityPublisher
	statsCache   StatsCache
}

func NewActivityUseCase(
	activityRepo repository.ActivityLogRepository,
	publisher ActivityPublisher,
	statsCache StatsCache,
) *ActivityUseCase {
	return &ActivityUseCase{
		activityRepo: activityRepo,
		publisher:    publisher,
		statsCache:   statsCache,
	}
}

// Record runs the side effects that follow a state change. None of them
// can fail the change itself.
func (uc *ActivityUseCase) Record(ctx context.Context, session *entity.Session, actionType, targetID, details string) {
	entry := &entity.ActivityLogEntry{
		ActionType: actionType,
		Details:    details,
		TargetID:   targetID,
		ActorID:    session.ActorID(),
		CreatedAt:  timeNow(),
	}

	if err := uc.activityRepo.Create(ctx, entry); err != nil {
		logger.LogSideEffectError(actionType, targetID, err)
	} else if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, entry); err != nil {
			logger.LogSideEffectError(actionType+":publish", targetID, err)
		}
	}

	uc.InvalidateDashboard(ctx)
}

func (uc *ActivityUseCase) InvalidateDashboard(ctx context.Context) {
	if uc.statsCache == nil {
		return
	}
	if err := uc.statsCache.InvalidateStats(ctx); err != nil {
		logger.LogSideEffectError("invalidate_dashboard", "", err)
	}
}

func (uc *ActivityUseCase) RecentActivity(ctx context.Context, limit int) ([]*entity.ActivityLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = recentActivityLimit
	}

	entries, err := uc.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		logger.LogReadDegraded("activity log", err)
		return []*entity.ActivityLogEntry{}, nil
	}
	return entries, nil
}
