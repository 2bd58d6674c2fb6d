package handler

import (
	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	SwapID  string `json:"swap_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), reviewerID, usecase.CreateReviewInput{
		SwapID:  req.SwapID,
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListUserReviews(c.Request().Context(), c.Param("id"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
