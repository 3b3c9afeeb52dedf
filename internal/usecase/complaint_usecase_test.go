package usecase

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fad/internal/domain/entity"
	"fad/internal/domain/workflow"
	"fad/internal/infrastructure/ratelimit"
	"fad/pkg/errors"
)

func complaintFixture(status string) *testEnv {
	env := newTestEnv()
	v := pendingVendor(vendorSession.UID, "Retro Rack")
	v.InstagramHandle = "retro.rack"
	env.vendors = newMemVendorRepo(v)
	env.complaints = newMemComplaintRepo(&entity.ComplaintTicket{
		ID:           "t1",
		TicketCode:   "T-000042",
		VendorID:     vendorSession.UID,
		BuyerID:      buyerSession.UID,
		IssueSummary: "Parcel never arrived",
		Status:       status,
		CreatedAt:    testNow.Add(-time.Hour),
		UpdatedAt:    testNow.Add(-time.Hour),
	})
	env.wire(false)
	return env
}

func TestResolveSetsResponseAndTimestamp(t *testing.T) {
	freezeTime(t, testNow)
	env := complaintFixture(workflow.ComplaintOpen)

	ticket, err := env.complaintUC.Resolve(context.Background(), adminSession, "t1", "Refund issued", nil)
	require.NoError(t, err)
	assert.Equal(t, workflow.ComplaintResolved, ticket.Status)
	assert.Equal(t, "Refund issued", ticket.PublicResponse)
	require.NotNil(t, ticket.ResolvedAt)
	assert.Equal(t, testNow, *ticket.ResolvedAt)
	assert.Equal(t, []string{entity.ActionResolveComplaint}, env.activity.actions())
}

func TestResolveRejectsEmptyResponse(t *testing.T) {
	env := complaintFixture(workflow.ComplaintOpen)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := env.complaintUC.Resolve(ctx, adminSession, "t1", text, nil)
		assert.True(t, errors.Is(err, errors.CodeBadRequest), "text %q", text)
	}

	stored, _ := env.complaints.GetByID(ctx, "t1")
	assert.Equal(t, workflow.ComplaintOpen, stored.Status)
	assert.Empty(t, env.activity.entries)
}

func TestResolveByOwningVendorOnly(t *testing.T) {
	freezeTime(t, testNow)
	env := complaintFixture(workflow.ComplaintInReview)
	ctx := context.Background()

	_, err := env.complaintUC.Resolve(ctx, buyerSession, "t1", "Sorted", nil)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	ticket, err := env.complaintUC.Resolve(ctx, vendorSession, "t1", "Replacement shipped", nil)
	require.NoError(t, err)
	assert.Equal(t, workflow.ComplaintResolved, ticket.Status)
}

func TestUpdateStatusFollowsTable(t *testing.T) {
	freezeTime(t, testNow)
	env := complaintFixture(workflow.ComplaintOpen)
	ctx := context.Background()

	ticket, err := env.complaintUC.UpdateStatus(ctx, adminSession, "t1", "in_review", nil)
	require.NoError(t, err)
	assert.Equal(t, workflow.ComplaintInReview, ticket.Status)

	ticket, err = env.complaintUC.UpdateStatus(ctx, adminSession, "t1", workflow.ComplaintEscalated, nil)
	require.NoError(t, err)
	assert.Equal(t, workflow.ComplaintEscalated, ticket.Status)

	_, err = env.complaintUC.UpdateStatus(ctx, adminSession, "t1", "resolved", nil)
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition))

	_, err = env.complaintUC.UpdateStatus(ctx, adminSession, "t1", "closed", nil)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = env.complaintUC.UpdateStatus(ctx, adminSession, "t1", "escalated", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		entity.ActionUpdateComplaintStatus,
		entity.ActionUpdateComplaintStatus,
		entity.ActionUpdateComplaintStatus,
	}, env.activity.actions())
}

func TestResolvedTicketOnlyLeavesThroughReopen(t *testing.T) {
	freezeTime(t, testNow)
	env := complaintFixture(workflow.ComplaintResolved)
	ctx := context.Background()

	_, err := env.complaintUC.UpdateStatus(ctx, adminSession, "t1", "open", nil)
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition))

	_, err = env.complaintUC.Reopen(ctx, adminSession, "t1", "", nil)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	ticket, err := env.complaintUC.Reopen(ctx, adminSession, "t1", "Buyer disputes refund", nil)
	require.NoError(t, err)
	assert.Equal(t, workflow.ComplaintOpen, ticket.Status)
	assert.Nil(t, ticket.ResolvedAt)
	assert.Empty(t, ticket.PublicResponse)

	_, err = env.complaintUC.Reopen(ctx, adminSession, "t1", "again", nil)
	assert.True(t, errors.Is(err, errors.CodeInvalidTransition))
}

func TestComplaintStaleWrite(t *testing.T) {
	freezeTime(t, testNow)
	env := complaintFixture(workflow.ComplaintOpen)
	ctx := context.Background()

	loaded, err := env.complaintUC.GetTicket(ctx, "t1")
	require.NoError(t, err)

	_, err = env.complaintUC.UpdateNotes(ctx, adminSession, "t1", "Called buyer", ptr(loaded.UpdatedAt))
	require.NoError(t, err)

	// a second admin still holds the first copy
	_, err = env.complaintUC.Resolve(ctx, adminSession, "t1", "Refund issued", ptr(loaded.UpdatedAt))
	assert.True(t, errors.Is(err, errors.CodeStaleWrite))

	stored, _ := env.complaints.GetByID(ctx, "t1")
	assert.Equal(t, workflow.ComplaintOpen, stored.Status)
	assert.Equal(t, "Called buyer", stored.AdminNotes)
}

func TestFileComplaintByHandle(t *testing.T) {
	freezeTime(t, testNow)
	env := complaintFixture(workflow.ComplaintOpen)
	env.profiles = newMemProfileRepo(&entity.Profile{ID: buyerSession.UID, FullName: "Asha K"})
	env.wire(false)

	ticket, err := env.complaintUC.FileComplaint(context.Background(), buyerSession, FileComplaintInput{
		InstagramHandle: "@Retro.Rack",
		IssueSummary:    "Wrong size",
		ComplaintText:   "Ordered M, got XL",
	})
	require.NoError(t, err)
	assert.Equal(t, vendorSession.UID, ticket.VendorID)
	assert.Equal(t, workflow.ComplaintOpen, ticket.Status)
	assert.Equal(t, "Asha K", ticket.BuyerName)
	assert.Equal(t, "Retro.Rack", ticket.InstagramHandle)
	assert.Regexp(t, regexp.MustCompile(`^T-\d{6}$`), ticket.TicketCode)

	_, err = env.complaintUC.FileComplaint(context.Background(), buyerSession, FileComplaintInput{
		InstagramHandle: "unknown.store",
		IssueSummary:    "Scam",
	})
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = env.complaintUC.FileComplaint(context.Background(), buyerSession, FileComplaintInput{IssueSummary: "Scam"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestFileComplaintRateLimited(t *testing.T) {
	env := complaintFixture(workflow.ComplaintOpen)
	env.limiter.deny[ratelimit.ActionFileComplaint] = true

	_, err := env.complaintUC.FileComplaint(context.Background(), buyerSession, FileComplaintInput{
		VendorID:     vendorSession.UID,
		IssueSummary: "Late",
	})
	assert.True(t, errors.Is(err, errors.CodeTooManyRequests))
}

func TestTicketCodeIsStable(t *testing.T) {
	id := uuid.MustParse("00000001-0000-0000-0000-000000000000")
	assert.Equal(t, "T-000001", ticketCode(id))

	id = uuid.MustParse("0001e240-0000-0000-0000-000000000000")
	assert.Equal(t, "T-123456", ticketCode(id))
}

func stubTicketIDs(t *testing.T, ids ...string) {
	t.Helper()
	orig := newTicketID
	next := 0
	newTicketID = func() uuid.UUID {
		id := uuid.MustParse(ids[next%len(ids)])
		next++
		return id
	}
	t.Cleanup(func() { newTicketID = orig })
}

func TestFileComplaintSkipsTakenTicketCodes(t *testing.T) {
	env := complaintFixture(workflow.ComplaintOpen)
	env.complaints.tickets["t-old"] = &entity.ComplaintTicket{ID: "t-old", TicketCode: "T-000001"}
	stubTicketIDs(t,
		"00000001-0000-0000-0000-000000000000",
		"00000002-0000-0000-0000-000000000000",
	)

	ticket, err := env.complaintUC.FileComplaint(context.Background(), buyerSession, FileComplaintInput{
		VendorID:     vendorSession.UID,
		IssueSummary: "Late delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, "T-000002", ticket.TicketCode)
	assert.Equal(t, "00000002-0000-0000-0000-000000000000", ticket.ID)
}

func TestFileComplaintGivesUpWhenCodesStayTaken(t *testing.T) {
	env := complaintFixture(workflow.ComplaintOpen)
	env.complaints.tickets["t-old"] = &entity.ComplaintTicket{ID: "t-old", TicketCode: "T-000001"}
	stubTicketIDs(t, "00000001-0000-0000-0000-000000000000")

	_, err := env.complaintUC.FileComplaint(context.Background(), buyerSession, FileComplaintInput{
		VendorID:     vendorSession.UID,
		IssueSummary: "Late delivery",
	})
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestUploadEvidence(t *testing.T) {
	freezeTime(t, testNow)
	env := complaintFixture(workflow.ComplaintOpen)
	ctx := context.Background()

	objectName := "complaints/t1/" + "1773484200000" + "_receipt.png"
	env.storage.On("UploadObject", mock.Anything, mock.Anything, "image/png", objectName, true).
		Return("https://storage.googleapis.com/fad-test/"+objectName, nil).Once()

	evidence, err := env.complaintUC.UploadEvidence(ctx, buyerSession, "t1", FileInput{
		Name:        "receipt.png",
		ContentType: "image/png",
		Size:        2048,
		Content:     strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, objectName, evidence.FilePath)
	assert.Equal(t, "receipt.png", evidence.FileName)

	listed, err := env.complaintUC.GetEvidence(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	stranger := &entity.Session{UID: "someone-else", Role: entity.RoleBuyer}
	_, err = env.complaintUC.UploadEvidence(ctx, stranger, "t1", FileInput{
		Name: "x.png", ContentType: "image/png", Content: strings.NewReader("x"),
	})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	env.storage.AssertExpectations(t)
}

func TestListTicketsAndSellerInbox(t *testing.T) {
	env := complaintFixture(workflow.ComplaintOpen)
	ctx := context.Background()

	open, err := env.complaintUC.ListTickets(ctx, "open")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Retro Rack", open[0].VendorName)

	resolved, err := env.complaintUC.ListTickets(ctx, "resolved")
	require.NoError(t, err)
	assert.Empty(t, resolved)

	inbox, err := env.complaintUC.SellerComplaints(ctx, vendorSession)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)

	inbox, err = env.complaintUC.SellerComplaints(ctx, buyerSession)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}
