package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/workflow"
	"fad/internal/infrastructure/ratelimit"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

type ComplaintUseCase struct {
	complaintRepo repository.ComplaintRepository
	vendorRepo    repository.VendorRepository
	profileRepo   repository.ProfileRepository
	files         *FileUseCase
	limiter       ActionLimiter
	activity      *ActivityUseCase
}

func NewComplaintUseCase(
	complaintRepo repository.ComplaintRepository,
	vendorRepo repository.VendorRepository,
	profileRepo repository.ProfileRepository,
	files *FileUseCase,
	limiter ActionLimiter,
	activity *ActivityUseCase,
) *ComplaintUseCase {
	return &ComplaintUseCase{
		complaintRepo: complaintRepo,
		vendorRepo:    vendorRepo,
		profileRepo:   profileRepo,
		files:         files,
		limiter:       limiter,
		activity:      activity,
	}
}

// FileComplaintInput names the vendor either by id or by Instagram handle.
type FileComplaintInput struct {
	VendorID        string
	InstagramHandle string
	IssueSummary    string
	ComplaintText   string
}

const ticketCodeAttempts = 5

var newTicketID = uuid.New

// ticketCode derives a short human code from a uuid.
func ticketCode(id uuid.UUID) string {
	n := (uint32(id[0])<<24 | uint32(id[1])<<16 | uint32(id[2])<<8 | uint32(id[3])) % 1000000
	return fmt.Sprintf("T-%06d", n)
}

// allocateTicket draws ids until the derived code is unused.
func (uc *ComplaintUseCase) allocateTicket(ctx context.Context) (uuid.UUID, string, error) {
	for i := 0; i < ticketCodeAttempts; i++ {
		id := newTicketID()
		code := ticketCode(id)
		taken, err := uc.complaintRepo.TicketCodeExists(ctx, code)
		if err != nil {
			return uuid.Nil, "", errors.Internal("Failed to allocate ticket code", err)
		}
		if !taken {
			return id, code, nil
		}
	}
	return uuid.Nil, "", errors.Conflict("Could not allocate a unique ticket code, try again")
}

func (uc *ComplaintUseCase) FileComplaint(ctx context.Context, session *entity.Session, input FileComplaintInput) (*entity.ComplaintTicket, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	summary := strings.TrimSpace(input.IssueSummary)
	if summary == "" {
		return nil, errors.BadRequest("Issue summary is required", nil)
	}
	if input.VendorID == "" && strings.TrimSpace(input.InstagramHandle) == "" {
		return nil, errors.BadRequest("Vendor id or Instagram handle is required", nil)
	}
	if err := allow(uc.limiter, session.UID, ratelimit.ActionFileComplaint); err != nil {
		return nil, err
	}

	var (
		vendor *entity.Vendor
		err    error
	)
	if input.VendorID != "" {
		vendor, err = uc.vendorRepo.GetByID(ctx, input.VendorID)
	} else {
		vendor, err = uc.vendorRepo.GetByInstagramHandle(ctx, input.InstagramHandle)
	}
	if err != nil {
		return nil, errors.NotFound("Vendor", err)
	}

	buyerName := session.Email
	if profile, err := uc.profileRepo.GetByID(ctx, session.UID); err == nil && profile.FullName != "" {
		buyerName = profile.FullName
	}

	id, code, err := uc.allocateTicket(ctx)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	ticket := &entity.ComplaintTicket{
		ID:              id.String(),
		TicketCode:      code,
		VendorID:        vendor.ID,
		BuyerID:         session.UID,
		BuyerName:       buyerName,
		InstagramHandle: strings.TrimPrefix(strings.TrimSpace(input.InstagramHandle), "@"),
		IssueSummary:    summary,
		ComplaintText:   strings.TrimSpace(input.ComplaintText),
		Status:          workflow.ComplaintOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
		VendorName:      vendor.DisplayName(),
	}
	if ticket.InstagramHandle == "" {
		ticket.InstagramHandle = vendor.InstagramHandle
	}

	if err := uc.complaintRepo.Create(ctx, ticket); err != nil {
		return nil, errors.Internal("Failed to file complaint", err)
	}

	uc.activity.InvalidateDashboard(ctx)
	return ticket, nil
}

// ListTickets returns tickets newest first for a UI status filter.
func (uc *ComplaintUseCase) ListTickets(ctx context.Context, status string) ([]*entity.ComplaintTicket, error) {
	statuses, err := workflow.ComplaintStatus.StorageFilter(status)
	if err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	return uc.list(ctx, repository.ComplaintFilter{Statuses: statuses}), nil
}

func (uc *ComplaintUseCase) SellerComplaints(ctx context.Context, session *entity.Session) ([]*entity.ComplaintTicket, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.ComplaintFilter{VendorID: session.UID}), nil
}

func (uc *ComplaintUseCase) list(ctx context.Context, filter repository.ComplaintFilter) []*entity.ComplaintTicket {
	tickets, err := uc.complaintRepo.List(ctx, filter)
	if err != nil {
		logger.LogReadDegraded("complaints", err)
		return []*entity.ComplaintTicket{}
	}

	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.VendorID)
	}
	names := vendorNames(ctx, uc.vendorRepo, ids)
	for _, t := range tickets {
		t.VendorName = names[t.VendorID]
	}
	return tickets
}

func (uc *ComplaintUseCase) GetTicket(ctx context.Context, id string) (*entity.ComplaintTicket, error) {
	ticket, err := uc.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Complaint", err)
	}
	return ticket, nil
}

func (uc *ComplaintUseCase) GetEvidence(ctx context.Context, ticketID string) ([]*entity.Evidence, error) {
	evidence, err := uc.complaintRepo.ListEvidence(ctx, ticketID)
	if err != nil {
		logger.LogReadDegraded("complaint evidence", err)
		return []*entity.Evidence{}, nil
	}
	return evidence, nil
}

// UploadEvidence attaches a file to a ticket. Only the buyer who filed it,
// the vendor it names or an admin may add evidence.
func (uc *ComplaintUseCase) UploadEvidence(ctx context.Context, session *entity.Session, ticketID string, file FileInput) (*entity.Evidence, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	ticket, err := uc.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() && session.UID != ticket.BuyerID && session.UID != ticket.VendorID {
		return nil, errors.Forbidden("You cannot add evidence to this complaint", nil)
	}
	if err := allow(uc.limiter, session.UID, ratelimit.ActionUploadEvidence); err != nil {
		return nil, err
	}

	now := timeNow()
	name := path.Base(file.Name)
	objectName := fmt.Sprintf("complaints/%s/%d_%s", ticket.ID, now.UnixMilli(), name)

	metadata, err := uc.files.Store(ctx, session, file, entity.FileEntityComplaintEvidence, ticket.ID, "", objectName)
	if err != nil {
		return nil, err
	}

	evidence := &entity.Evidence{
		ID:         uuid.New().String(),
		TicketID:   ticket.ID,
		FileName:   name,
		FilePath:   objectName,
		FileType:   file.ContentType,
		URL:        metadata.URL,
		UploadedBy: session.UID,
		CreatedAt:  now,
	}
	if err := uc.complaintRepo.CreateEvidence(ctx, evidence); err != nil {
		uc.files.Discard(ctx, metadata)
		return nil, errors.Internal("Failed to save evidence", err)
	}

	return evidence, nil
}

// UpdateStatus moves a ticket along the workflow. Resolving needs a public
// response and reopening a reason, so both have their own operations.
func (uc *ComplaintUseCase) UpdateStatus(ctx context.Context, session *entity.Session, id, status string, expected *time.Time) (*entity.ComplaintTicket, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	target, err := workflow.ComplaintStatus.ToStorage(status)
	if err != nil {
		if !workflow.ComplaintStatus.ValidStorage(status) {
			return nil, errors.BadRequest(err.Error(), err)
		}
		target = status
	}

	ticket, err := uc.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkFresh("Complaint", expected, ticket.UpdatedAt, ticket); err != nil {
		return nil, err
	}

	from := ticket.Status
	if workflow.ComplaintTransitions.IsNoop(from, target) {
		uc.activity.Record(ctx, session, entity.ActionUpdateComplaintStatus, id,
			fmt.Sprintf("Ticket %s status unchanged: %s", ticket.TicketCode, target))
		return ticket, nil
	}
	if target == workflow.ComplaintResolved || from == workflow.ComplaintResolved ||
		!workflow.ComplaintTransitions.CanTransition(from, target) {
		return nil, errors.InvalidTransition("complaint", from, target)
	}

	stored := ticket.UpdatedAt
	ticket.Status = target
	ticket.UpdatedAt = timeNow()
	if err := uc.complaintRepo.Update(ctx, ticket, &stored); err != nil {
		return nil, err
	}

	uc.activity.Record(ctx, session, entity.ActionUpdateComplaintStatus, id,
		fmt.Sprintf("Ticket %s moved from %s to %s", ticket.TicketCode, from, target))

	return ticket, nil
}

func (uc *ComplaintUseCase) UpdateNotes(ctx context.Context, session *entity.Session, id, notes string, expected *time.Time) (*entity.ComplaintTicket, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	ticket, err := uc.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkFresh("Complaint", expected, ticket.UpdatedAt, ticket); err != nil {
		return nil, err
	}

	if ticket.AdminNotes != notes {
		stored := ticket.UpdatedAt
		ticket.AdminNotes = notes
		ticket.UpdatedAt = timeNow()
		if err := uc.complaintRepo.Update(ctx, ticket, &stored); err != nil {
			return nil, err
		}
	}

	uc.activity.Record(ctx, session, entity.ActionUpdateComplaintNotes, id,
		fmt.Sprintf("Updated notes on ticket %s", ticket.TicketCode))

	return ticket, nil
}

// Resolve closes the ticket with a public response. Admins and the vendor
// named on the ticket may resolve it.
func (uc *ComplaintUseCase) Resolve(ctx context.Context, session *entity.Session, id, responseText string, expected *time.Time) (*entity.ComplaintTicket, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return nil, errors.BadRequest("Resolution response is required", nil)
	}

	ticket, err := uc.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() && session.UID != ticket.VendorID {
		return nil, errors.Forbidden("Only an admin or the vendor can resolve this complaint", nil)
	}
	if err := checkFresh("Complaint", expected, ticket.UpdatedAt, ticket); err != nil {
		return nil, err
	}
	if !workflow.ComplaintTransitions.CanTransition(ticket.Status, workflow.ComplaintResolved) {
		return nil, errors.InvalidTransition("complaint", ticket.Status, workflow.ComplaintResolved)
	}

	if ticket.Status != workflow.ComplaintResolved || ticket.PublicResponse != responseText {
		stored := ticket.UpdatedAt
		now := timeNow()
		if ticket.Status != workflow.ComplaintResolved || ticket.ResolvedAt == nil {
			ticket.ResolvedAt = &now
		}
		ticket.Status = workflow.ComplaintResolved
		ticket.PublicResponse = responseText
		ticket.UpdatedAt = now
		if err := uc.complaintRepo.Update(ctx, ticket, &stored); err != nil {
			return nil, err
		}
	}

	uc.activity.Record(ctx, session, entity.ActionResolveComplaint, id,
		fmt.Sprintf("Resolved ticket %s: %s", ticket.TicketCode, responseText))

	return ticket, nil
}

// Reopen sends a resolved ticket back to Open and clears its resolution.
func (uc *ComplaintUseCase) Reopen(ctx context.Context, session *entity.Session, id, reason string, expected *time.Time) (*entity.ComplaintTicket, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.BadRequest("Reopen reason is required", nil)
	}

	ticket, err := uc.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkFresh("Complaint", expected, ticket.UpdatedAt, ticket); err != nil {
		return nil, err
	}
	if ticket.Status != workflow.ComplaintResolved {
		return nil, errors.InvalidTransition("complaint", ticket.Status, workflow.ComplaintOpen)
	}

	stored := ticket.UpdatedAt
	ticket.Status = workflow.ComplaintOpen
	ticket.ResolvedAt = nil
	ticket.PublicResponse = ""
	ticket.UpdatedAt = timeNow()
	if err := uc.complaintRepo.Update(ctx, ticket, &stored); err != nil {
		return nil, err
	}

	uc.activity.Record(ctx, session, entity.ActionReopenComplaint, id,
		fmt.Sprintf("Reopened ticket %s. Reason: %s", ticket.TicketCode, reason))

	return ticket, nil
}
