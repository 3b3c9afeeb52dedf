package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fad/internal/domain/entity"
	"fad/internal/domain/workflow"
	"fad/pkg/errors"
)

func TestRevokeThenRenewRestoresActiveForOneYear(t *testing.T) {
	env := newTestEnv()
	env.vendors = newMemVendorRepo(pendingVendor("v1", "Retro Rack"))
	env.certs = newMemCertRepo(&entity.Certification{
		ID:          "v1",
		VendorID:    "v1",
		CertifiedOn: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiresOn:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:      workflow.CertificationActive,
	})
	env.wire(false)
	ctx := context.Background()

	freezeTime(t, testNow)
	revoked, err := env.certUC.Revoke(ctx, adminSession, "v1")
	require.NoError(t, err)
	assert.Equal(t, workflow.CertificationRevoked, revoked.Status)
	assert.Equal(t, workflow.CertRevoked, workflow.DerivedCertificationStatus(revoked, testNow))

	renewedAt := testNow.Add(5 * 24 * time.Hour)
	freezeTime(t, renewedAt)
	renewed, err := env.certUC.Renew(ctx, adminSession, "v1")
	require.NoError(t, err)

	assert.Equal(t, workflow.CertificationActive, renewed.Status)
	assert.Nil(t, renewed.RevokedAt)
	assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), renewed.CertifiedOn)
	assert.Equal(t, time.Date(2027, 3, 19, 0, 0, 0, 0, time.UTC), renewed.ExpiresOn)
	assert.Equal(t, workflow.CertActive, workflow.DerivedCertificationStatus(renewed, renewedAt))

	assert.Equal(t, []string{entity.ActionRevokeCertificate, entity.ActionRenewCertificate}, env.activity.actions())
}

func TestRenewCreatesMissingCertification(t *testing.T) {
	freezeTime(t, testNow)
	env := newTestEnv()
	env.vendors = newMemVendorRepo(pendingVendor("v1", "Retro Rack"))
	env.wire(false)

	cert, err := env.certUC.Renew(context.Background(), adminSession, "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", cert.VendorID)
	assert.Equal(t, workflow.CertificationActive, cert.Status)

	_, err = env.certUC.Renew(context.Background(), adminSession, "nobody")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestRenewKeepsRowOnGatewayError(t *testing.T) {
	freezeTime(t, testNow)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv()
	env.vendors = newMemVendorRepo(pendingVendor("v1", "Retro Rack"))
	env.certs = newMemCertRepo(&entity.Certification{
		ID:        "v1",
		VendorID:  "v1",
		Status:    workflow.CertificationRevoked,
		CreatedAt: created,
	})
	env.certs.failGet = errors.Internal("Failed to get certification", nil)
	env.wire(false)

	_, err := env.certUC.Renew(context.Background(), adminSession, "v1")
	assert.True(t, errors.Is(err, errors.CodeInternal))

	stored := env.certs.certs["v1"]
	assert.Equal(t, workflow.CertificationRevoked, stored.Status)
	assert.Equal(t, created, stored.CreatedAt)
	assert.Empty(t, env.activity.actions())
}

func TestRevokeWithoutCertificationIsNotFound(t *testing.T) {
	env := newTestEnv()
	env.vendors = newMemVendorRepo(pendingVendor("v1", "Retro Rack"))
	env.wire(false)

	_, err := env.certUC.Revoke(context.Background(), adminSession, "v1")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Empty(t, env.activity.entries)
}

func TestListCertificatesMergesVendors(t *testing.T) {
	freezeTime(t, testNow)
	env := newTestEnv()
	a := pendingVendor("a", "zebra vintage")
	a.Rating = 4.2
	b := pendingVendor("b", "Attic Finds")
	env.vendors = newMemVendorRepo(a, b)
	env.certs = newMemCertRepo(&entity.Certification{
		VendorID:    "a",
		CertifiedOn: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpiresOn:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:      workflow.CertificationActive,
	})
	env.wire(false)

	rows, err := env.certUC.ListCertificates(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Attic Finds", rows[0].Business)
	assert.Equal(t, workflow.CertNotCertified, rows[0].Status)
	assert.Equal(t, "—", rows[0].Expiry)
	assert.False(t, rows[0].HasCert)

	assert.Equal(t, "zebra vintage", rows[1].Business)
	assert.Equal(t, workflow.CertActive, rows[1].Status)
	assert.Equal(t, "2025-06-01", rows[1].CertifiedOn)
	assert.Equal(t, "2026-06-01", rows[1].Expiry)
	assert.Equal(t, 4.2, rows[1].Rating)
}
