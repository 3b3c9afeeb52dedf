package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
)

type firestoreActivityLogRepository struct {
	client *firestore.Client
}

func NewFirestoreActivityLogRepository(client *firestore.Client) repository.ActivityLogRepository {
	return &firestoreActivityLogRepository{
		client: client,
	}
}

func (r *firestoreActivityLogRepository) Create(ctx context.Context, entry *entity.ActivityLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("admin_activity_log").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to write activity log", err)
	}

	return nil
}

func (r *firestoreActivityLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLogEntry, error) {
	query := r.client.Collection("admin_activity_log").OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return collect[entity.ActivityLogEntry](ctx, query, "Activity log")
}
