package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/pkg/errors"
)

type firestoreComplaintRepository struct {
	client *firestore.Client
}

func NewFirestoreComplaintRepository(client *firestore.Client) repository.ComplaintRepository {
	return &firestoreComplaintRepository{
		client: client,
	}
}

func (r *firestoreComplaintRepository) Create(ctx context.Context, ticket *entity.ComplaintTicket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}

	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	_, err := r.client.Collection("complaint_tickets").Doc(ticket.ID).Set(ctx, ticket)
	if err != nil {
		return errors.Internal("Failed to create complaint ticket", err)
	}

	return nil
}

func (r *firestoreComplaintRepository) GetByID(ctx context.Context, id string) (*entity.ComplaintTicket, error) {
	return getDoc[entity.ComplaintTicket](ctx, r.client.Collection("complaint_tickets").Doc(id), "Complaint ticket")
}

func (r *firestoreComplaintRepository) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.ComplaintTicket, error) {
	query := r.client.Collection("complaint_tickets").Query
	if filter.VendorID != "" {
		query = query.Where("vendorId", "==", filter.VendorID)
	}
	query = whereStatuses(query, "status", filter.Statuses)
	query = query.OrderBy("createdAt", firestore.Desc)

	return collect[entity.ComplaintTicket](ctx, query, "Complaint tickets")
}

func (r *firestoreComplaintRepository) Update(ctx context.Context, ticket *entity.ComplaintTicket, expected *time.Time) error {
	ref := r.client.Collection("complaint_tickets").Doc(ticket.ID)
	return setIfUnchanged(ctx, r.client, ref, ticket, expected, "Complaint ticket")
}

func (r *firestoreComplaintRepository) CountByStatus(ctx context.Context, ticketStatus string) (int64, error) {
	n, err := count(ctx, r.client.Collection("complaint_tickets").Where("status", "==", ticketStatus))
	if err != nil {
		return 0, errors.Internal("Failed to count complaint tickets", err)
	}
	return n, nil
}

func (r *firestoreComplaintRepository) TicketCodeExists(ctx context.Context, code string) (bool, error) {
	iter := r.client.Collection("complaint_tickets").Where("ticketCode", "==", code).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal("Failed to query complaint tickets", err)
	}
	return true, nil
}

func (r *firestoreComplaintRepository) CreateEvidence(ctx context.Context, evidence *entity.Evidence) error {
	if evidence.ID == "" {
		evidence.ID = uuid.New().String()
	}
	evidence.CreatedAt = time.Now()

	_, err := r.client.Collection("complaint_evidence").Doc(evidence.ID).Set(ctx, evidence)
	if err != nil {
		return errors.Internal("Failed to save complaint evidence", err)
	}

	return nil
}

func (r *firestoreComplaintRepository) ListEvidence(ctx context.Context, ticketID string) ([]*entity.Evidence, error) {
	query := r.client.Collection("complaint_evidence").
		Where("ticketId", "==", ticketID).
		OrderBy("createdAt", firestore.Asc)

	return collect[entity.Evidence](ctx, query, "Complaint evidence")
}
