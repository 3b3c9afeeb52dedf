package handler

import (
	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/response"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category"`
	Images      []string `json:"images" validate:"omitempty,max=10,dive,url"`
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	listings, err := h.listingUseCase.ListListings(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return respondList(c, listings)
}

func (h *ListingHandler) PendingListings(c echo.Context) error {
	listings, err := h.listingUseCase.PendingListings(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return respondList(c, listings)
}

func (h *ListingHandler) ApproveListing(c echo.Context) error {
	var req guardedRequest
	if err := bindOptional(c, &req); err != nil {
		return response.Error(c, err)
	}

	expected, err := expectedUpdatedAt(c, req.ExpectedUpdatedAt)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.ApproveListing(c.Request().Context(), sessionFrom(c), c.Param("id"), expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) RejectListing(c echo.Context) error {
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

	listing, err := h.listingUseCase.RejectListing(c.Request().Context(), sessionFrom(c), c.Param("id"), req.Reason, expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), sessionFrom(c), usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) MyListings(c echo.Context) error {
	listings, err := h.listingUseCase.MyListings(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}
