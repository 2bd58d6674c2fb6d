package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type PartHandler struct {
	partUseCase *usecase.PartUseCase
}

func NewPartHandler(partUseCase *usecase.PartUseCase) *PartHandler {
	return &PartHandler{
		partUseCase: partUseCase,
	}
}

type createPartRequest struct {
	Title           string                `json:"title" validate:"required"`
	Description     string                `json:"description"`
	Category        string                `json:"category" validate:"required"`
	Condition       string                `json:"condition" validate:"required,oneof=new used refurbished"`
	CompatibleMakes []string              `json:"compatible_makes"`
	Price           float64               `json:"price" validate:"required,gt=0"`
	Currency        string                `json:"currency" validate:"required"`
	OpenToSwap      bool                  `json:"open_to_swap"`
	Images          []listingImageRequest `json:"images"`
}

func (h *PartHandler) CreatePart(c echo.Context) error {
	var req createPartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	part, err := h.partUseCase.CreatePart(c.Request().Context(), sellerID, usecase.CreatePartInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Condition:       req.Condition,
		CompatibleMakes: req.CompatibleMakes,
		Price:           req.Price,
		Currency:        req.Currency,
		OpenToSwap:      req.OpenToSwap,
		Images:          toListingImages(req.Images),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, part)
}

func (h *PartHandler) GetPart(c echo.Context) error {
	part, err := h.partUseCase.GetPartByID(c.Request().Context(), c.Param("id"), true)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, part)
}

type updatePartRequest struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	Category        *string               `json:"category"`
	Condition       *string               `json:"condition"`
	CompatibleMakes []string              `json:"compatible_makes"`
	Price           *float64              `json:"price"`
	OpenToSwap      *bool                 `json:"open_to_swap"`
	Status          *string               `json:"status"`
	Images          []listingImageRequest `json:"images"`
}

func (h *PartHandler) UpdatePart(c echo.Context) error {
	var req updatePartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	input := usecase.UpdatePartInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Condition:       req.Condition,
		CompatibleMakes: req.CompatibleMakes,
		Price:           req.Price,
		OpenToSwap:      req.OpenToSwap,
		Status:          req.Status,
	}
	if req.Images != nil {
		input.Images = toListingImages(req.Images)
	}

	part, err := h.partUseCase.UpdatePart(c.Request().Context(), actorID, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, part)
}

func (h *PartHandler) DeletePart(c echo.Context) error {
	actorID := c.Get("uid").(string)

	if err := h.partUseCase.DeletePart(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *PartHandler) ListParts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	params := usecase.ListPartsParams{
		Category:  c.QueryParam("category"),
		Condition: c.QueryParam("condition"),
		Make:      c.QueryParam("make"),
		Status:    c.QueryParam("status"),
		Sort:      c.QueryParam("sort"),
		Page:      pagination.Page,
		Limit:     pagination.PageSize,
	}

	params.PriceMin, _ = strconv.ParseFloat(c.QueryParam("price_min"), 64)
	params.PriceMax, _ = strconv.ParseFloat(c.QueryParam("price_max"), 64)

	if raw := c.QueryParam("open_to_swap"); raw != "" {
		openToSwap := raw == "true"
		params.OpenToSwap = &openToSwap
	}

	parts, total, err := h.partUseCase.ListParts(c.Request().Context(), params)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, parts, total, pagination.Page, pagination.PageSize)
}

func (h *PartHandler) ListMyParts(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	parts, total, err := h.partUseCase.ListSellerParts(c.Request().Context(), sellerID, c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, parts, total, pagination.Page, pagination.PageSize)
}

func (h *PartHandler) ApprovePart(c echo.Context) error {
	part, err := h.partUseCase.ApprovePart(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, part)
}
