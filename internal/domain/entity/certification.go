package entity

import (
	"time"
)

// Certification is keyed by vendor id, so a vendor has at most one.
type Certification struct {
	ID          string     `json:"id" firestore:"id"`
	VendorID    string     `json:"vendor_id" firestore:"vendorId"`
	CertifiedOn time.Time  `json:"certified_on" firestore:"certifiedOn"`
	ExpiresOn   time.Time  `json:"expires_on" firestore:"expiresOn"`
	Status      string     `json:"status" firestore:"status"` // Active, Revoked
	RevokedAt   *time.Time `json:"revoked_at,omitempty" firestore:"revokedAt,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// CertificateView is one row of the admin certificate table.
type CertificateView struct {
	VendorID    string  `json:"vendor_id"`
	Business    string  `json:"business"`
	Status      string  `json:"status"`
	CertifiedOn string  `json:"certified_on"`
	Expiry      string  `json:"expiry"`
	Rating      float64 `json:"rating"`
	HasCert     bool    `json:"has_certificate"`
}
