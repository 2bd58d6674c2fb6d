package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gearswap/internal/domain/entity"
	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type VehicleHandler struct {
	vehicleUseCase *usecase.VehicleUseCase
}

func NewVehicleHandler(vehicleUseCase *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{
		vehicleUseCase: vehicleUseCase,
	}
}

type listingImageRequest struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type createVehicleRequest struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description"`
	Make        string                `json:"make" validate:"required"`
	Model       string                `json:"model" validate:"required"`
	Year        int                   `json:"year" validate:"required"`
	Mileage     int                   `json:"mileage" validate:"min=0"`
	Price       float64               `json:"price" validate:"required,gt=0"`
	Currency    string                `json:"currency" validate:"required"`
	OpenToSwap  bool                  `json:"open_to_swap"`
	Images      []listingImageRequest `json:"images"`
}

func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	vehicle, err := h.vehicleUseCase.CreateVehicle(c.Request().Context(), sellerID, usecase.CreateVehicleInput{
		Title:       req.Title,
		Description: req.Description,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Mileage:     req.Mileage,
		Price:       req.Price,
		Currency:    req.Currency,
		OpenToSwap:  req.OpenToSwap,
		Images:      toListingImages(req.Images),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, vehicle)
}

func (h *VehicleHandler) GetVehicle(c echo.Context) error {
	vehicle, err := h.vehicleUseCase.GetVehicleByID(c.Request().Context(), c.Param("id"), true)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

type updateVehicleRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Make        *string               `json:"make"`
	Model       *string               `json:"model"`
	Year        *int                  `json:"year"`
	Mileage     *int                  `json:"mileage"`
	Price       *float64              `json:"price"`
	OpenToSwap  *bool                 `json:"open_to_swap"`
	Status      *string               `json:"status"`
	Images      []listingImageRequest `json:"images"`
}

func (h *VehicleHandler) UpdateVehicle(c echo.Context) error {
	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	input := usecase.UpdateVehicleInput{
		Title:       req.Title,
		Description: req.Description,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Mileage:     req.Mileage,
		Price:       req.Price,
		OpenToSwap:  req.OpenToSwap,
		Status:      req.Status,
	}
	if req.Images != nil {
		input.Images = toListingImages(req.Images)
	}

	vehicle, err := h.vehicleUseCase.UpdateVehicle(c.Request().Context(), actorID, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c echo.Context) error {
	actorID := c.Get("uid").(string)

	if err := h.vehicleUseCase.DeleteVehicle(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *VehicleHandler) ListVehicles(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	params := usecase.ListVehiclesParams{
		Make:   c.QueryParam("make"),
		Model:  c.QueryParam("model"),
		Status: c.QueryParam("status"),
		Sort:   c.QueryParam("sort"),
		Page:   pagination.Page,
		Limit:  pagination.PageSize,
	}

	params.YearMin, _ = strconv.Atoi(c.QueryParam("year_min"))
	params.YearMax, _ = strconv.Atoi(c.QueryParam("year_max"))
	params.PriceMin, _ = strconv.ParseFloat(c.QueryParam("price_min"), 64)
	params.PriceMax, _ = strconv.ParseFloat(c.QueryParam("price_max"), 64)

	if raw := c.QueryParam("open_to_swap"); raw != "" {
		openToSwap := raw == "true"
		params.OpenToSwap = &openToSwap
	}

	vehicles, total, err := h.vehicleUseCase.ListVehicles(c.Request().Context(), params)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, vehicles, total, pagination.Page, pagination.PageSize)
}

func (h *VehicleHandler) SearchVehicles(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleUseCase.SearchVehicles(c.Request().Context(), c.QueryParam("q"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, vehicles, total, pagination.Page, pagination.PageSize)
}

func (h *VehicleHandler) ListMyVehicles(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	vehicles, total, err := h.vehicleUseCase.ListSellerVehicles(c.Request().Context(), sellerID, c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, vehicles, total, pagination.Page, pagination.PageSize)
}

func (h *VehicleHandler) ApproveVehicle(c echo.Context) error {
	vehicle, err := h.vehicleUseCase.ApproveVehicle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vehicle)
}

func toListingImages(reqs []listingImageRequest) []entity.ListingImage {
	images := make([]entity.ListingImage, len(reqs))
	for i, img := range reqs {
		images[i] = entity.ListingImage{
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}
	return images
}
