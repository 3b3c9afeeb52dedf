package entity

import (
	"time"
)

// Review is a buyer's rating of a vendor.
type Review struct {
	ID               string         `json:"id" firestore:"id"`
	VendorID         string         `json:"vendor_id" firestore:"vendorId"`
	ReviewerID       string         `json:"reviewer_id" firestore:"reviewerId"`
	ReviewerName     string         `json:"reviewer_name" firestore:"reviewerName"`
	Rating           int            `json:"rating" firestore:"rating"` // 1-5
	Body             string         `json:"body" firestore:"body"`
	DetailRatings    map[string]int `json:"detail_ratings,omitempty" firestore:"detailRatings,omitempty"`
	Images           []string       `json:"images,omitempty" firestore:"images,omitempty"`
	ModerationStatus string         `json:"moderation_status" firestore:"moderationStatus"` // pending, published, removed
	IsFlagged        bool           `json:"is_flagged" firestore:"isFlagged"`
	FlagReason       string         `json:"flag_reason,omitempty" firestore:"flagReason,omitempty"`
	CreatedAt        time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time      `json:"updated_at" firestore:"updatedAt"`

	VendorName string `json:"vendor_name,omitempty" firestore:"-"`
}
