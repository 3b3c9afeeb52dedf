package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

type CertificationUseCase struct {
	certRepo   repository.CertificationRepository
	vendorRepo repository.VendorRepository
	activity   *ActivityUseCase
}

func NewCertificationUseCase(
	certRepo repository.CertificationRepository,
	vendorRepo repository.VendorRepository,
	activity *ActivityUseCase,
) *CertificationUseCase {
	return &CertificationUseCase{
		certRepo:   certRepo,
		vendorRepo: vendorRepo,
		activity:   activity,
	}
}

// ListCertificates returns one row per vendor, ordered by business name.
func (uc *CertificationUseCase) ListCertificates(ctx context.Context) ([]*entity.CertificateView, error) {
	vendors, err := uc.vendorRepo.List(ctx, repository.VendorFilter{})
	if err != nil {
		logger.LogReadDegraded("vendors", err)
		return []*entity.CertificateView{}, nil
	}

	certs, err := uc.certRepo.List(ctx)
	if err != nil {
		logger.LogReadDegraded("certifications", err)
		certs = nil
	}
	byVendor := make(map[string]*entity.Certification, len(certs))
	for _, c := range certs {
		byVendor[c.VendorID] = c
	}

	now := timeNow()
	rows := make([]*entity.CertificateView, 0, len(vendors))
	for _, v := range vendors {
		cert := byVendor[v.ID]
		row := &entity.CertificateView{
			VendorID:    v.ID,
			Business:    v.DisplayName(),
			Status:      workflow.DerivedCertificationStatus(cert, now),
			CertifiedOn: workflow.FormatDate(certifiedOn(cert)),
			Expiry:      workflow.FormatDate(expiresOn(cert)),
			Rating:      v.Rating,
			HasCert:     cert != nil,
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Business) < strings.ToLower(rows[j].Business)
	})
	return rows, nil
}

func certifiedOn(c *entity.Certification) (t time.Time) {
	if c != nil {
		t = c.CertifiedOn
	}
	return t
}

func expiresOn(c *entity.Certification) (t time.Time) {
	if c != nil {
		t = c.ExpiresOn
	}
	return t
}

func (uc *CertificationUseCase) GetCertification(ctx context.Context, vendorID string) (*entity.Certification, error) {
	cert, err := uc.certRepo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return nil, errors.NotFound("Certification", err)
	}
	return cert, nil
}

// Renew makes the certification active for one year from today, whatever
// its previous state. A vendor without one gets a new certification.
func (uc *CertificationUseCase) Renew(ctx context.Context, session *entity.Session, vendorID string) (*entity.Certification, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, errors.NotFound("Vendor", err)
	}

	now := timeNow()
	cert, err := uc.certRepo.GetByVendorID(ctx, vendorID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Internal("Failed to load certification", err)
		}
		cert = &entity.Certification{
			ID:        vendorID,
			VendorID:  vendorID,
			CreatedAt: now,
		}
	}

	cert.CertifiedOn, cert.ExpiresOn = workflow.RenewalWindow(now)
	cert.Status = workflow.CertificationActive
	cert.RevokedAt = nil
	cert.UpdatedAt = now

	if err := uc.certRepo.Upsert(ctx, cert); err != nil {
		return nil, errors.Internal("Failed to renew certification", err)
	}

	uc.activity.Record(ctx, session, entity.ActionRenewCertificate, vendorID,
		fmt.Sprintf("Renewed certificate for %s until %s", vendor.DisplayName(), workflow.FormatDate(cert.ExpiresOn)))

	return cert, nil
}

func (uc *CertificationUseCase) Revoke(ctx context.Context, session *entity.Session, vendorID string) (*entity.Certification, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	cert, err := uc.GetCertification(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if cert.Status != workflow.CertificationRevoked {
		now := timeNow()
		cert.Status = workflow.CertificationRevoked
		cert.RevokedAt = &now
		cert.UpdatedAt = now
		if err := uc.certRepo.Upsert(ctx, cert); err != nil {
			return nil, errors.Internal("Failed to revoke certification", err)
		}
	}

	uc.activity.Record(ctx, session, entity.ActionRevokeCertificate, vendorID,
		fmt.Sprintf("Revoked certificate for vendor %s", vendorID))

	return cert, nil
}
