package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fad/internal/domain/entity"
)

func TestMappingRoundTrip(t *testing.T) {
	for _, m := range []*Mapping{VendorStatus, ListingStatus, ReviewStatus, ComplaintStatus} {
		for _, ui := range m.UIValues() {
			stored, err := m.ToStorage(ui)
			require.NoError(t, err, m.Entity())
			back, err := m.ToUI(stored)
			require.NoError(t, err, m.Entity())
			assert.Equal(t, ui, back, "%s %s", m.Entity(), ui)
		}
	}
}

func TestMappingKnownPairs(t *testing.T) {
	v, err := VendorStatus.ToStorage("approved")
	require.NoError(t, err)
	assert.Equal(t, VendorVerified, v)

	l, err := ListingStatus.ToStorage("pending")
	require.NoError(t, err)
	assert.Equal(t, ListingPendingReview, l)

	c, err := ComplaintStatus.ToUI("In Review")
	require.NoError(t, err)
	assert.Equal(t, "in_review", c)
}

func TestMappingRejectsUnknownValues(t *testing.T) {
	_, err := VendorStatus.ToStorage("verified")
	assert.Error(t, err)
	_, err = ListingStatus.ToUI("pending")
	assert.Error(t, err)
	assert.False(t, ReviewStatus.ValidUI("flagged"))
}

func TestStorageFilter(t *testing.T) {
	values, err := ListingStatus.StorageFilter(FilterAll)
	require.NoError(t, err)
	assert.Nil(t, values)

	values, err = ListingStatus.StorageFilter("")
	require.NoError(t, err)
	assert.Nil(t, values)

	values, err = ListingStatus.StorageFilter("pending")
	require.NoError(t, err)
	assert.Equal(t, []string{ListingPendingReview}, values)

	_, err = ListingStatus.StorageFilter("bogus")
	assert.Error(t, err)
}

func TestTransitionTables(t *testing.T) {
	cases := []struct {
		table    *Table
		from, to string
		ok       bool
	}{
		{VendorTransitions, VendorPending, VendorVerified, true},
		{VendorTransitions, VendorPending, VendorRejected, true},
		{VendorTransitions, VendorVerified, VendorVerified, true},
		{VendorTransitions, VendorRejected, VendorVerified, false},
		{VendorTransitions, VendorUnverified, VendorVerified, false},
		{VendorTransitions, VendorUnverified, VendorPending, true},
		{VendorTransitions, VendorRejected, VendorPending, false},
		{VendorTransitions, VendorPending, "approved", false},

		{ListingTransitions, ListingPendingReview, ListingApproved, true},
		{ListingTransitions, ListingApproved, ListingApproved, true},
		{ListingTransitions, ListingApproved, ListingRejected, false},

		{ReviewTransitions, ReviewPending, ReviewPublished, true},
		{ReviewTransitions, ReviewPublished, ReviewRemoved, true},
		{ReviewTransitions, ReviewRemoved, ReviewPublished, true},
		{ReviewTransitions, ReviewPublished, ReviewPending, false},

		{ComplaintTransitions, ComplaintOpen, ComplaintInReview, true},
		{ComplaintTransitions, ComplaintInReview, ComplaintEscalated, true},
		{ComplaintTransitions, ComplaintEscalated, ComplaintInReview, true},
		{ComplaintTransitions, ComplaintInReview, ComplaintOpen, false},
		{ComplaintTransitions, ComplaintResolved, ComplaintOpen, true},
		{ComplaintTransitions, ComplaintResolved, ComplaintInReview, false},
		{ComplaintTransitions, ComplaintOpen, "Closed", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.table.CanTransition(tc.from, tc.to), "%s %s -> %s", tc.table.Entity(), tc.from, tc.to)
	}
}

func TestIsNoop(t *testing.T) {
	assert.True(t, ListingTransitions.IsNoop(ListingApproved, ListingApproved))
	assert.False(t, ListingTransitions.IsNoop(ListingPendingReview, ListingApproved))
	assert.False(t, ListingTransitions.IsNoop("x", "x"))
}

func TestDerivedCertificationStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, CertNotCertified, DerivedCertificationStatus(nil, now))
	assert.Equal(t, CertRevoked, DerivedCertificationStatus(&entity.Certification{
		Status:    CertificationRevoked,
		ExpiresOn: now.AddDate(1, 0, 0),
	}, now))
	assert.Equal(t, CertExpired, DerivedCertificationStatus(&entity.Certification{
		Status:    CertificationActive,
		ExpiresOn: now.AddDate(0, 0, -2),
	}, now))
	assert.Equal(t, CertExpiringSoon, DerivedCertificationStatus(&entity.Certification{
		Status:    CertificationActive,
		ExpiresOn: now.AddDate(0, 0, 30),
	}, now))
	assert.Equal(t, CertActive, DerivedCertificationStatus(&entity.Certification{
		Status:    CertificationActive,
		ExpiresOn: now.AddDate(0, 0, 31),
	}, now))
}

func TestRenewalWindowIsExactlyOneYear(t *testing.T) {
	now := time.Date(2024, 2, 29, 15, 30, 0, 0, time.UTC)
	from, to := RenewalWindow(now)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, from.AddDate(1, 0, 0), to)
	assert.Equal(t, "2026-01-02", FormatDate(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "—", FormatDate(time.Time{}))
}

func TestDefaultClassifier(t *testing.T) {
	c := DefaultClassifier()

	assert.Equal(t, "Shipping", c.Classify("Delivery was LATE"))
	assert.Equal(t, "Product", c.Classify("wrong size sent"))
	assert.Equal(t, "Other", c.Classify("seller was rude"))
	assert.Equal(t, "Shipping", c.Classify("wrong color and it arrived late"))
	assert.Equal(t, []string{"Product", "Shipping", "Other"}, c.Labels())
}

func TestParseClassifier(t *testing.T) {
	c, err := ParseClassifier([]byte(`
fallback: Misc
rules:
  - label: Payment
    keywords: [Refund, " upi "]
`))
	require.NoError(t, err)
	assert.Equal(t, "Payment", c.Classify("no refund yet"))
	assert.Equal(t, "Payment", c.Classify("paid via UPI"))
	assert.Equal(t, "Misc", c.Classify("late delivery"))
	assert.Equal(t, []string{"Payment", "Misc"}, c.Labels())

	c, err = ParseClassifier([]byte(`
rules:
  - label: Payment
    keywords: [refund]
order: [Other, Payment]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Other", "Payment"}, c.Labels())

	_, err = ParseClassifier([]byte("rules:\n  - label: A\n    keywords: [a]\norder: [A, B]\n"))
	assert.Error(t, err)

	_, err = ParseClassifier([]byte("rules:\n  - label: A\n    keywords: [a]\norder: [A]\n"))
	assert.Error(t, err)

	_, err = ParseClassifier([]byte("rules: []"))
	assert.Error(t, err)

	_, err = ParseClassifier([]byte("rules:\n  - keywords: [a]\n"))
	assert.Error(t, err)
}

func TestLoadClassifierWithoutPathUsesDefaults(t *testing.T) {
	c, err := LoadClassifier("")
	require.NoError(t, err)
	assert.Equal(t, "Shipping", c.Classify("tracking number missing"))
}
