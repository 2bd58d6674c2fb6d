package handler

import (
	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type SwapHandler struct {
	swapUseCase *usecase.SwapUseCase
}

func NewSwapHandler(swapUseCase *usecase.SwapUseCase) *SwapHandler {
	return &SwapHandler{
		swapUseCase: swapUseCase,
	}
}

type proposeSwapRequest struct {
	OfferedVehicleID  string  `json:"offered_vehicle_id" validate:"required"`
	RequestedItemType string  `json:"requested_item_type" validate:"required,oneof=vehicle part"`
	RequestedItemID   string  `json:"requested_item_id" validate:"required"`
	Message           string  `json:"message"`
	AdditionalCash    float64 `json:"additional_cash" validate:"min=0"`
	Currency          string  `json:"currency"`
}

func (h *SwapHandler) ProposeSwap(c echo.Context) error {
	var req proposeSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	initiatorID := c.Get("uid").(string)

	swap, err := h.swapUseCase.Propose(c.Request().Context(), initiatorID, usecase.ProposeSwapInput{
		OfferedVehicleID:  req.OfferedVehicleID,
		RequestedItemType: req.RequestedItemType,
		RequestedItemID:   req.RequestedItemID,
		Message:           req.Message,
		AdditionalCash:    req.AdditionalCash,
		Currency:          req.Currency,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, swap)
}

type respondSwapRequest struct {
	ResponseNote string `json:"response_note"`
}

func (h *SwapHandler) AcceptSwap(c echo.Context) error {
	var req respondSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	swap, err := h.swapUseCase.Accept(c.Request().Context(), c.Param("id"), actorID, req.ResponseNote)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

func (h *SwapHandler) RejectSwap(c echo.Context) error {
	var req respondSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	swap, err := h.swapUseCase.Reject(c.Request().Context(), c.Param("id"), actorID, req.ResponseNote)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

func (h *SwapHandler) CancelSwap(c echo.Context) error {
	actorID := c.Get("uid").(string)

	swap, err := h.swapUseCase.Cancel(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

func (h *SwapHandler) CompleteSwap(c echo.Context) error {
	actorID := c.Get("uid").(string)

	swap, err := h.swapUseCase.Complete(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

func (h *SwapHandler) GetSwap(c echo.Context) error {
	userID := c.Get("uid").(string)

	swap, err := h.swapUseCase.GetSwapByID(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

func (h *SwapHandler) ListSwaps(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	swaps, total, err := h.swapUseCase.ListSwaps(
		c.Request().Context(),
		userID,
		c.QueryParam("role"),
		c.QueryParam("status"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, swaps, total, pagination.Page, pagination.PageSize)
}
