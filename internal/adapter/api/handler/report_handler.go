package handler

import (
	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
	}
}

type submitReportRequest struct {
	TargetType  string `json:"target_type" validate:"required,oneof=vehicle part user swap review"`
	TargetID    string `json:"target_id" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
	Description string `json:"description"`
}

func (h *ReportHandler) SubmitReport(c echo.Context) error {
	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reporterID := c.Get("uid").(string)

	report, err := h.reportUseCase.Submit(c.Request().Context(), reporterID, usecase.SubmitReportInput{
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, report)
}

func (h *ReportHandler) GetReport(c echo.Context) error {
	report, err := h.reportUseCase.GetReportByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}

func (h *ReportHandler) ListReports(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	reports, total, err := h.reportUseCase.ListReports(c.Request().Context(), c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reports, total, pagination.Page, pagination.PageSize)
}

type resolveReportRequest struct {
	Status     string `json:"status" validate:"required,oneof=resolved dismissed"`
	Resolution string `json:"resolution" validate:"required"`
	Action     string `json:"action" validate:"omitempty,oneof=none remove suspend ban"`
}

func (h *ReportHandler) ResolveReport(c echo.Context) error {
	var req resolveReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	report, err := h.reportUseCase.Resolve(c.Request().Context(), adminID, c.Param("id"), usecase.ResolveReportInput{
		Status:     req.Status,
		Resolution: req.Resolution,
		Action:     req.Action,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}
