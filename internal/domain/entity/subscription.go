package entity

import (
	"time"
)

const FreePlanID = "free"

type Plan struct {
	ID           string   `json:"id" firestore:"id"`
	Name         string   `json:"name" firestore:"name"`
	PriceMonthly float64  `json:"price_monthly" firestore:"priceMonthly"`
	Features     []string `json:"features" firestore:"features"`
	IsActive     bool     `json:"is_active" firestore:"isActive"`
}

type Promotions struct {
	ActiveCampaign  bool `json:"campaign" firestore:"activeCampaign"`
	VisibilityBoost bool `json:"boost" firestore:"visibilityBoost"`
	ClickTracking   bool `json:"tracking" firestore:"clickTracking"`
}

// Subscription is keyed by vendor id and written with upsert semantics.
type Subscription struct {
	ID               string     `json:"id" firestore:"id"`
	VendorID         string     `json:"vendor_id" firestore:"vendorId"`
	PlanID           string     `json:"plan_id" firestore:"planId"`
	Promotions       Promotions `json:"promotions" firestore:"promotions"`
	CustomNote       string     `json:"custom_note,omitempty" firestore:"customNote,omitempty"`
	DiscountCode     string     `json:"discount_code,omitempty" firestore:"discountCode,omitempty"`
	BillingReference string     `json:"billing_reference,omitempty" firestore:"billingReference,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at" firestore:"updatedAt"`

	Plan *Plan `json:"plan,omitempty" firestore:"-"`
}

type ROIReport struct {
	VendorID           string `json:"vendor_id" firestore:"vendorId"`
	ViewsCount         int    `json:"views_count" firestore:"viewsCount"`
	LeadsCount         int    `json:"leads_count" firestore:"leadsCount"`
	ConversationsCount int    `json:"conversations_count" firestore:"conversationsCount"`
}
