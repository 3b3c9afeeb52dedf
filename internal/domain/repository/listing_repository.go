package repository

import (
	"context"
	"time"

	"fad/internal/domain/entity"
)

type ListingFilter struct {
	VendorID string
	Statuses []string
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing, expected *time.Time) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}
