package workflow

import (
	"math"
	"time"

	"fad/internal/domain/entity"
)

// Derived certification labels shown to admins and sellers.
const (
	CertNotCertified = "Not Certified"
	CertRevoked      = "Revoked"
	CertExpired      = "Expired"
	CertExpiringSoon = "Expiring Soon"
	CertActive       = "Active"

	ExpiringSoonDays = 30
)

// DerivedCertificationStatus computes the display label for a certification
// at the given moment. A nil certification is Not Certified.
func DerivedCertificationStatus(cert *entity.Certification, now time.Time) string {
	if cert == nil {
		return CertNotCertified
	}
	if cert.Status == CertificationRevoked {
		return CertRevoked
	}

	days := DaysUntil(cert.ExpiresOn, now)
	switch {
	case days < 0:
		return CertExpired
	case days <= ExpiringSoonDays:
		return CertExpiringSoon
	}
	return CertActive
}

// DaysUntil rounds the remaining duration up to whole days.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// RenewalWindow returns the certified-on and expires-on dates for a renewal
// happening at now: today's date and the same date one year later.
func RenewalWindow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return today, today.AddDate(1, 0, 0)
}

// FormatDate renders certification dates as YYYY-MM-DD, or a dash for zero values.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}
