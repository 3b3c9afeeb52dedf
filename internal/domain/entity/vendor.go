package entity

import (
	"time"
)

type VendorDocument struct {
	Name string `json:"name" firestore:"name"`
	Type string `json:"type" firestore:"type"`
	URL  string `json:"url" firestore:"url"`
}

// Vendor is a thrift store that sells on Instagram and is reviewed on FAD.
// Its document id is the owner's auth uid.
type Vendor struct {
	ID              string `json:"id" firestore:"id"`
	BusinessName    string `json:"business_name" firestore:"businessName"`
	StoreName       string `json:"store_name,omitempty" firestore:"storeName,omitempty"`
	InstagramHandle string `json:"instagram_handle" firestore:"instagramHandle"`
	InstagramURL    string `json:"instagram_url,omitempty" firestore:"instagramUrl,omitempty"`
	Email           string `json:"email,omitempty" firestore:"email,omitempty"`
	Phone           string `json:"phone,omitempty" firestore:"phone,omitempty"`
	GSTIN           string `json:"gstin,omitempty" firestore:"gstin,omitempty"`
	Category        string `json:"category" firestore:"category"`
	Location        string `json:"location" firestore:"location"`
	Description     string `json:"description,omitempty" firestore:"description,omitempty"`
	ImageURL        string `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`

	VerificationStatus      string           `json:"verification_status" firestore:"verificationStatus"` // unverified, pending, verified, rejected
	Documents               []VendorDocument `json:"documents" firestore:"documents"`
	VerificationSubmittedAt *time.Time       `json:"verification_submitted_at,omitempty" firestore:"verificationSubmittedAt,omitempty"`
	RejectionReason         string           `json:"rejection_reason,omitempty" firestore:"rejectionReason,omitempty"`

	DripScore   float64 `json:"drip_score" firestore:"dripScore"`
	Rating      float64 `json:"rating" firestore:"rating"`
	ReviewCount int     `json:"review_count" firestore:"reviewCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DisplayName falls back through the name fields the way every listing screen does.
func (v *Vendor) DisplayName() string {
	switch {
	case v == nil:
		return "Unknown Vendor"
	case v.BusinessName != "":
		return v.BusinessName
	case v.StoreName != "":
		return v.StoreName
	case v.InstagramHandle != "":
		return v.InstagramHandle
	}
	return "Unnamed Vendor"
}

// VendorSummary is the id/name pair used by seller pickers.
type VendorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VendorProfile is the public vendor page.
type VendorProfile struct {
	Vendor              *Vendor   `json:"vendor"`
	CertificationStatus string    `json:"certification_status"`
	Reviews             []*Review `json:"reviews"`
	OpenComplaints      int       `json:"open_complaints"`
	ResolvedComplaints  int       `json:"resolved_complaints"`
}
