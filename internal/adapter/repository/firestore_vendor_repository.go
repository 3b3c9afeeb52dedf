package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
)

type firestoreVendorRepository struct {
	client *firestore.Client
}

func NewFirestoreVendorRepository(client *firestore.Client) repository.VendorRepository {
	return &firestoreVendorRepository{
		client: client,
	}
}

func (r *firestoreVendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	now := time.Now()
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = now
	}
	if vendor.UpdatedAt.IsZero() {
		vendor.UpdatedAt = now
	}
	if vendor.Documents == nil {
		vendor.Documents = []entity.VendorDocument{}
	}

	_, err := r.client.Collection("vendors").Doc(vendor.ID).Create(ctx, vendor)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Vendor already exists")
		}
		return errors.Internal("Failed to create vendor", err)
	}

	return nil
}

func (r *firestoreVendorRepository) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	return getDoc[entity.Vendor](ctx, r.client.Collection("vendors").Doc(id), "Vendor")
}

func (r *firestoreVendorRepository) GetByInstagramHandle(ctx context.Context, handle string) (*entity.Vendor, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")

	iter := r.client.Collection("vendors").Where("instagramHandle", "==", handle).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Vendor", nil)
		}
		return nil, errors.Internal("Failed to query vendor", err)
	}

	var vendor entity.Vendor
	if err := doc.DataTo(&vendor); err != nil {
		return nil, errors.Internal("Failed to parse vendor data", err)
	}

	return &vendor, nil
}

func (r *firestoreVendorRepository) List(ctx context.Context, filter repository.VendorFilter) ([]*entity.Vendor, error) {
	query := whereStatuses(r.client.Collection("vendors").Query, "verificationStatus", filter.Statuses)
	return collect[entity.Vendor](ctx, query, "Vendors")
}

func (r *firestoreVendorRepository) Update(ctx context.Context, vendor *entity.Vendor, expected *time.Time) error {
	ref := r.client.Collection("vendors").Doc(vendor.ID)
	return setIfUnchanged(ctx, r.client, ref, vendor, expected, "Vendor")
}

func (r *firestoreVendorRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("vendors").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete vendor", err)
	}

	return nil
}

func (r *firestoreVendorRepository) CountByStatus(ctx context.Context, verificationStatus string) (int64, error) {
	n, err := count(ctx, r.client.Collection("vendors").Where("verificationStatus", "==", verificationStatus))
	if err != nil {
		return 0, errors.Internal("Failed to count vendors", err)
	}
	return n, nil
}
