package repository

import (
	"context"
	"time"

	"fad/internal/domain/entity"
)

type ComplaintFilter struct {
	VendorID string
	Statuses []string
}

type ComplaintRepository interface {
	Create(ctx context.Context, ticket *entity.ComplaintTicket) error
	GetByID(ctx context.Context, id string) (*entity.ComplaintTicket, error)
	// List returns tickets newest first.
	List(ctx context.Context, filter ComplaintFilter) ([]*entity.ComplaintTicket, error)
	Update(ctx context.Context, ticket *entity.ComplaintTicket, expected *time.Time) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	TicketCodeExists(ctx context.Context, code string) (bool, error)

	CreateEvidence(ctx context.Context, evidence *entity.Evidence) error
	ListEvidence(ctx context.Context, ticketID string) ([]*entity.Evidence, error)
}
