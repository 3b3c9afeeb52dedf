package repository

import (
	"context"
	"time"

	"fad/internal/domain/entity"
)

type ReviewFilter struct {
	VendorID    string
	Statuses    []string
	FlaggedOnly bool
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	// List returns reviews newest first.
	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review, expected *time.Time) error
	CountFlagged(ctx context.Context) (int64, error)
}
