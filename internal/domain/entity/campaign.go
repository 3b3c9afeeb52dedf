package entity

import (
	"time"
)

type Campaign struct {
	ID           string    `json:"id" firestore:"id"`
	VendorID     string    `json:"vendor_id" firestore:"vendorId"`
	Name         string    `json:"name" firestore:"name"`
	Status       string    `json:"status" firestore:"status"` // Active, Paused, Completed
	DailyBudget  float64   `json:"daily_budget" firestore:"dailyBudget"`
	DurationDays int       `json:"duration_days" firestore:"durationDays"`
	Goal         string    `json:"goal" firestore:"goal"` // Visits, Followers, Sales
	SpendAmount  float64   `json:"spend_amount" firestore:"spendAmount"`
	StartDate    time.Time `json:"start_date" firestore:"startDate"`
	EndsAt       time.Time `json:"ends_at" firestore:"endsAt"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
