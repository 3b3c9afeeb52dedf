package entity

import (
	"time"
)

type Listing struct {
	ID               string    `json:"id" firestore:"id"`
	VendorID         string    `json:"vendor_id" firestore:"vendorId"`
	Title            string    `json:"title" firestore:"title"`
	Description      string    `json:"description" firestore:"description"`
	Price            float64   `json:"price" firestore:"price"`
	Category         string    `json:"category,omitempty" firestore:"category,omitempty"`
	Images           []string  `json:"images" firestore:"images"`
	ModerationStatus string    `json:"moderation_status" firestore:"moderationStatus"` // pending_review, approved, rejected
	AdminNotes       string    `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`
	CreatedAt        time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time `json:"updated_at" firestore:"updatedAt"`

	SellerName string `json:"seller_name,omitempty" firestore:"-"`
}
