package entity

import (
	"time"
)

// ComplaintTicket is a buyer complaint against a vendor, worked by admins
// and answered publicly by the vendor.
type ComplaintTicket struct {
	ID              string     `json:"id" firestore:"id"`
	TicketCode      string     `json:"ticket_code" firestore:"ticketCode"`
	VendorID        string     `json:"vendor_id" firestore:"vendorId"`
	BuyerID         string     `json:"buyer_id" firestore:"buyerId"`
	BuyerName       string     `json:"buyer_name" firestore:"buyerName"`
	InstagramHandle string     `json:"instagram_handle,omitempty" firestore:"instagramHandle,omitempty"`
	IssueSummary    string     `json:"issue_summary" firestore:"issueSummary"`
	ComplaintText   string     `json:"complaint_text" firestore:"complaintText"`
	Status          string     `json:"status" firestore:"status"` // Open, In Review, Resolved, Escalated
	AdminNotes      string     `json:"admin_notes" firestore:"adminNotes"`
	PublicResponse  string     `json:"public_response,omitempty" firestore:"publicResponse,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	CreatedAt       time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time  `json:"updated_at" firestore:"updatedAt"`

	VendorName string `json:"vendor_name,omitempty" firestore:"-"`
}

type Evidence struct {
	ID         string    `json:"id" firestore:"id"`
	TicketID   string    `json:"ticket_id" firestore:"ticketId"`
	FileName   string    `json:"file_name" firestore:"fileName"`
	FilePath   string    `json:"file_path" firestore:"filePath"`
	FileType   string    `json:"file_type" firestore:"fileType"`
	URL        string    `json:"url" firestore:"url"`
	UploadedBy string    `json:"uploaded_by" firestore:"uploadedBy"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
