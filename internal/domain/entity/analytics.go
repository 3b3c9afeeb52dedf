package entity

import (
	"time"
)

type DeliveryMetric struct {
	VendorID        string    `json:"vendor_id" firestore:"vendorId"`
	WeekLabel       string    `json:"week_label" firestore:"weekLabel"`
	WeekStart       time.Time `json:"week_start" firestore:"weekStart"`
	AvgDeliveryDays float64   `json:"avg_delivery_days" firestore:"avgDeliveryDays"`
}

type DripScorePoint struct {
	VendorID    string    `json:"vendor_id" firestore:"vendorId"`
	PeriodLabel string    `json:"period_label" firestore:"periodLabel"`
	Score       float64   `json:"score" firestore:"score"`
	RecordedAt  time.Time `json:"recorded_at" firestore:"recordedAt"`
}

type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type SellerAnalytics struct {
	VerificationStatus string        `json:"verification_status"`
	RenewalStatus      string        `json:"renewal_status"`
	ActiveComplaints   int           `json:"active_complaints"`
	ComplaintTypes     []SeriesPoint `json:"complaint_types"`
	DeliveryTime       []SeriesPoint `json:"delivery_time"`
	DripScoreHistory   []SeriesPoint `json:"drip_score_history"`
	Satisfaction       int           `json:"satisfaction"`
	ResponseRate       int           `json:"response_rate"`
}

type DashboardStats struct {
	PendingVerifications int64 `json:"pending_verifications"`
	PendingListings      int64 `json:"pending_listings"`
	FlaggedReviews       int64 `json:"flagged_reviews"`
	OpenComplaints       int64 `json:"open_complaints"`
}

type Dashboard struct {
	Stats          DashboardStats      `json:"stats"`
	RecentActivity []*ActivityLogEntry `json:"recent_activity"`
	GeneratedAt    time.Time           `json:"generated_at"`
}
