package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"fad/internal/domain/entity"
	"fad/internal/usecase"
	"fad/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type submitReviewRequest struct {
	Rating        int            `json:"rating" validate:"required,min=1,max=5"`
	Body          string         `json:"body" validate:"max=4000"`
	DetailRatings map[string]int `json:"detail_ratings"`
	Images        []string       `json:"images" validate:"omitempty,max=6,dive,url"`
}

type flagReviewRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *ReviewHandler) VendorReviews(c echo.Context) error {
	reviews, err := h.reviewUseCase.VendorReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.SubmitReview(c.Request().Context(), sessionFrom(c), usecase.SubmitReviewInput{
		VendorID:      c.Param("id"),
		Rating:        req.Rating,
		Body:          req.Body,
		DetailRatings: req.DetailRatings,
		Images:        req.Images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) FlagReview(c echo.Context) error {
	var req flagReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.FlagReview(c.Request().Context(), sessionFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) ModerationQueue(c echo.Context) error {
	reviews, err := h.reviewUseCase.ModerationQueue(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return response.Error(c, err)
	}

	return respondList(c, reviews)
}

type reviewAction func(ctx context.Context, session *entity.Session, id string, expected *time.Time) (*entity.Review, error)

func (h *ReviewHandler) PublishReview(c echo.Context) error {
	return h.moderate(c, h.reviewUseCase.PublishReview)
}

func (h *ReviewHandler) RemoveReview(c echo.Context) error {
	return h.moderate(c, h.reviewUseCase.RemoveReview)
}

func (h *ReviewHandler) RestoreReview(c echo.Context) error {
	return h.moderate(c, h.reviewUseCase.RestoreReview)
}

func (h *ReviewHandler) MarkSafe(c echo.Context) error {
	return h.moderate(c, h.reviewUseCase.MarkSafe)
}

func (h *ReviewHandler) moderate(c echo.Context, action reviewAction) error {
	var req guardedRequest
	if err := bindOptional(c, &req); err != nil {
		return response.Error(c, err)
	}

	expected, err := expectedUpdatedAt(c, req.ExpectedUpdatedAt)
	if err != nil {
		return response.Error(c, err)
	}

	review, err := action(c.Request().Context(), sessionFrom(c), c.Param("id"), expected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}
