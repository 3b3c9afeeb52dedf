package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/errors"
	"fad/pkg/response"
)

type VendorHandler struct {
	vendorUseCase *usecase.VendorUseCase
}

func NewVendorHandler(vendorUseCase *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{
		vendorUseCase: vendorUseCase,
	}
}

type rejectRequest struct {
	guardedRequest
	Reason string `json:"reason" validate:"required"`
}

func (h *VendorHandler) Discover(c echo.Context) error {
	vendors, err := h.vendorUseCase.Discover(c.Request().Context(), usecase.DiscoverFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		Score:    c.QueryParam("score"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return respondList(c, vendors)
}

func (h *VendorHandler) Facets(c echo.Context) error {
	facets, err := h.vendorUseCase.Facets(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, facets)
}

func (h *VendorHandler) TopRated(c echo.Context) error {
	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 50 {
			return response.Error(c, errors.BadRequest("Invalid limit value", nil))
		}
	}

	vendors, err := h.vendorUseCase.TopRated(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendors)
}

func (h *VendorHandler) GetVendorProfile(c echo.Context) error {
	profile, err := h.vendorUseCase.VendorProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *VendorHandler) GetVendorDocuments(c echo.Context) error {
	files, err := h.vendorUseCase.VendorDocuments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, files)
}

func (h *VendorHandler) GetVerifications(c echo.Context) error {
	vendors, err := h.vendorUseCase.GetVerifications(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return respondList(c, vendors)
}

func (h *VendorHandler) ApproveVendor(c echo.Context) error {
	var req guardedRequest
	if err := bindOptional(c, &req); err != nil {
		return response.Error(c, err)
	}

	expected, err := expectedUpdatedAt(c, req.ExpectedUpdatedAt)
	if err != nil {
		return response.Error(c, err)
	}

	vendor, err := h.vendorUseCase.ApproveVendor(c.Request().Context(), sessionFrom(c), c.Param("id"), expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

func (h *VendorHandler) RejectVendor(c echo.Context) error {
	var req rejectRequest
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

	vendor, err := h.vendorUseCase.RejectVendor(c.Request().Context(), sessionFrom(c), c.Param("id"), req.Reason, expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

// SubmitDocuments accepts a multipart form with one or more "documents"
// parts.
func (h *VendorHandler) SubmitDocuments(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	headers := form.File["documents"]
	if len(headers) == 0 {
		return response.Error(c, errors.BadRequest("At least one document is required", nil))
	}

	files := make([]usecase.FileInput, 0, len(headers))
	for _, header := range headers {
		file, src, err := openUpload(header)
		if err != nil {
			return response.Error(c, err)
		}
		defer src.Close()
		files = append(files, file)
	}

	expected, err := expectedUpdatedAt(c, nil)
	if err != nil {
		return response.Error(c, err)
	}

	vendor, err := h.vendorUseCase.SubmitDocuments(c.Request().Context(), sessionFrom(c), files, expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

func (h *VendorHandler) SubscriptionSellers(c echo.Context) error {
	sellers, err := h.vendorUseCase.SubscriptionSellers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sellers)
}

func (h *VendorHandler) AnalyticsSellers(c echo.Context) error {
	sellers, err := h.vendorUseCase.AnalyticsSellers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sellers)
}
