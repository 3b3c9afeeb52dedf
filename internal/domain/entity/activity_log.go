package entity

import (
	"time"
)

const (
	ActionVerifyVendor          = "VERIFY_VENDOR"
	ActionRejectVendor          = "REJECT_VENDOR"
	ActionApproveListing        = "APPROVE_LISTING"
	ActionRejectListing         = "REJECT_LISTING"
	ActionPublishReview         = "PUBLISH_REVIEW"
	ActionRemoveReview          = "REMOVE_REVIEW"
	ActionRestoreReview         = "RESTORE_REVIEW"
	ActionMarkReviewSafe        = "MARK_REVIEW_SAFE"
	ActionUpdateComplaintStatus = "UPDATE_COMPLAINT_STATUS"
	ActionUpdateComplaintNotes  = "UPDATE_COMPLAINT_NOTES"
	ActionResolveComplaint      = "RESOLVE_COMPLAINT"
	ActionReopenComplaint       = "REOPEN_COMPLAINT"
	ActionRenewCertificate      = "RENEW_CERTIFICATE"
	ActionRevokeCertificate     = "REVOKE_CERTIFICATE"
	ActionUpdateSubscription    = "UPDATE_SUBSCRIPTION"
)

// ActivityLogEntry is append-only.
type ActivityLogEntry struct {
	ID         string    `json:"id" firestore:"id"`
	ActionType string    `json:"action_type" firestore:"actionType"`
	Details    string    `json:"details" firestore:"details"`
	TargetID   string    `json:"target_id,omitempty" firestore:"targetId,omitempty"`
	ActorID    string    `json:"actor_id,omitempty" firestore:"actorId,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
