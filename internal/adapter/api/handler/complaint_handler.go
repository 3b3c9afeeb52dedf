package handler

import (
	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/errors"
	"fad/pkg/response"
)

type ComplaintHandler struct {
	complaintUseCase *usecase.ComplaintUseCase
}

func NewComplaintHandler(complaintUseCase *usecase.ComplaintUseCase) *ComplaintHandler {
	return &ComplaintHandler{
		complaintUseCase: complaintUseCase,
	}
}

type fileReportRequest struct {
	VendorID        string `json:"vendor_id"`
	InstagramHandle string `json:"instagram_handle"`
	IssueSummary    string `json:"issue_summary" validate:"required,max=200"`
	ComplaintText   string `json:"complaint_text" validate:"max=4000"`
}

type updateStatusRequest struct {
	guardedRequest
	Status string `json:"status" validate:"required"`
}

type updateNotesRequest struct {
	guardedRequest
	Notes string `json:"notes"`
}

type resolveRequest struct {
	guardedRequest
	Response string `json:"response" validate:"required"`
}

type reopenRequest struct {
	guardedRequest
	Reason string `json:"reason" validate:"required"`
}

func (h *ComplaintHandler) FileReport(c echo.Context) error {
	var req fileReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ticket, err := h.complaintUseCase.FileComplaint(c.Request().Context(), sessionFrom(c), usecase.FileComplaintInput{
		VendorID:        req.VendorID,
		InstagramHandle: req.InstagramHandle,
		IssueSummary:    req.IssueSummary,
		ComplaintText:   req.ComplaintText,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, ticket)
}

// UploadEvidence accepts a multipart form with a single "file" part.
func (h *ComplaintHandler) UploadEvidence(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	file, src, err := openUpload(header)
	if err != nil {
		return response.Error(c, err)
	}
	defer src.Close()

	evidence, err := h.complaintUseCase.UploadEvidence(c.Request().Context(), sessionFrom(c), c.Param("id"), file)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, evidence)
}

func (h *ComplaintHandler) ListTickets(c echo.Context) error {
	tickets, err := h.complaintUseCase.ListTickets(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return respondList(c, tickets)
}

func (h *ComplaintHandler) GetTicket(c echo.Context) error {
	ticket, err := h.complaintUseCase.GetTicket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ticket)
}

func (h *ComplaintHandler) GetEvidence(c echo.Context) error {
	evidence, err := h.complaintUseCase.GetEvidence(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, evidence)
}

func (h *ComplaintHandler) SellerComplaints(c echo.Context) error {
	tickets, err := h.complaintUseCase.SellerComplaints(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, tickets)
}

func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	expected, err := expectedUpdatedAt(c, req.ExpectedUpdatedAt)
	if err != nil {
		return response.Error(c, err)
	}

	ticket, err := h.complaintUseCase.UpdateStatus(c.Request().Context(), sessionFrom(c), c.Param("id"), req.Status, expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ticket)
}

func (h *ComplaintHandler) UpdateNotes(c echo.Context) error {
	var req updateNotesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	expected, err := expectedUpdatedAt(c, req.ExpectedUpdatedAt)
	if err != nil {
		return response.Error(c, err)
	}

	ticket, err := h.complaintUseCase.UpdateNotes(c.Request().Context(), sessionFrom(c), c.Param("id"), req.Notes, expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ticket)
}

// Resolve serves both the admin desk and the seller inbox. The use case
// decides who may resolve which ticket.
func (h *ComplaintHandler) Resolve(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	expected, err := expectedUpdatedAt(c, req.ExpectedUpdatedAt)
	if err != nil {
		return response.Error(c, err)
	}

	ticket, err := h.complaintUseCase.Resolve(c.Request().Context(), sessionFrom(c), c.Param("id"), req.Response, expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ticket)
}

func (h *ComplaintHandler) Reopen(c echo.Context) error {
	var req reopenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	expected, err := expectedUpdatedAt(c, req.ExpectedUpdatedAt)
	if err != nil {
		return response.Error(c, err)
	}

	ticket, err := h.complaintUseCase.Reopen(c.Request().Context(), sessionFrom(c), c.Param("id"), req.Reason, expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ticket)
}
