package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
)

type firestoreCertificationRepository struct {
	client *firestore.Client
}

func NewFirestoreCertificationRepository(client *firestore.Client) repository.CertificationRepository {
	return &firestoreCertificationRepository{
		client: client,
	}
}

func (r *firestoreCertificationRepository) GetByVendorID(ctx context.Context, vendorID string) (*entity.Certification, error) {
	return getDoc[entity.Certification](ctx, r.client.Collection("seller_certifications").Doc(vendorID), "Certification")
}

func (r *firestoreCertificationRepository) CreateIfAbsent(ctx context.Context, cert *entity.Certification) (bool, error) {
	cert.ID = cert.VendorID
	now := time.Now()
	cert.CreatedAt = now
	cert.UpdatedAt = now

	_, err := r.client.Collection("seller_certifications").Doc(cert.VendorID).Create(ctx, cert)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, errors.Internal("Failed to create certification", err)
	}

	return true, nil
}

func (r *firestoreCertificationRepository) Upsert(ctx context.Context, cert *entity.Certification) error {
	cert.ID = cert.VendorID
	cert.UpdatedAt = time.Now()
	if cert.CreatedAt.IsZero() {
		cert.CreatedAt = cert.UpdatedAt
	}

	_, err := r.client.Collection("seller_certifications").Doc(cert.VendorID).Set(ctx, cert)
	if err != nil {
		return errors.Internal("Failed to save certification", err)
	}

	return nil
}

func (r *firestoreCertificationRepository) List(ctx context.Context) ([]*entity.Certification, error) {
	return collect[entity.Certification](ctx, r.client.Collection("seller_certifications").Query, "Certifications")
}
