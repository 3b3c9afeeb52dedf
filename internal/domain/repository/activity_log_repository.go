package repository

import (
	"context"

	"fad/internal/domain/entity"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *entity.ActivityLogEntry) error
	// ListRecent returns the newest entries first.
	ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLogEntry, error)
}
