package repository

import (
	"context"
	"time"

	"fad/internal/domain/entity"
)

type VendorFilter struct {
	Statuses []string
}

type VendorRepository interface {
	// Create fails with a conflict when a vendor with the same id exists.
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	GetByInstagramHandle(ctx context.Context, handle string) (*entity.Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]*entity.Vendor, error)
	// Update writes the vendor. A non-nil expected updated-at makes the write
	// conditional on the stored value.
	Update(ctx context.Context, vendor *entity.Vendor, expected *time.Time) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}
