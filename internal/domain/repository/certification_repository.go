package repository

import (
	"context"

	"fad/internal/domain/entity"
)

// CertificationRepository stores one certification per vendor, keyed by vendor id.
type CertificationRepository interface {
	GetByVendorID(ctx context.Context, vendorID string) (*entity.Certification, error)
	// CreateIfAbsent inserts cert and reports false when a row already exists.
	CreateIfAbsent(ctx context.Context, cert *entity.Certification) (bool, error)
	Upsert(ctx context.Context, cert *entity.Certification) error
	List(ctx context.Context) ([]*entity.Certification, error)
}
