package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

type initializePaymentRequest struct {
	Amount        float64                `json:"amount" validate:"required,gt=0"`
	Currency      string                 `json:"currency" validate:"required"`
	PaymentMethod string                 `json:"payment_method" validate:"required"`
	Description   string                 `json:"description"`
	Metadata      map[string]interface{} `json:"metadata"`
}

func (h *PaymentHandler) InitializePayment(c echo.Context) error {
	var req initializePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	result, err := h.paymentUseCase.Initialize(c.Request().Context(), userID, usecase.InitializePaymentInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		Metadata:      req.Metadata,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	userID := c.Get("uid").(string)

	payment, err := h.paymentUseCase.Verify(c.Request().Context(), userID, c.Param("reference"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

// HandleWebhook receives gateway events. A bad signature is rejected, but any
// processing failure past that still answers 200 so the gateway stops
// retrying; reconciliation happens through the verify endpoint.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logger.Error("Failed to read webhook body: %v", err)
		return c.NoContent(http.StatusOK)
	}

	signature := c.Request().Header.Get("x-paystack-signature")

	if err := h.paymentUseCase.HandleWebhook(c.Request().Context(), signature, body); err != nil {
		if errors.Is(err, "UNAUTHORIZED") {
			logger.Warn("Rejected webhook with invalid signature from %s", c.RealIP())
			return c.NoContent(http.StatusUnauthorized)
		}
		logger.Error("Webhook processing failed: %v", err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	userID := c.Get("uid").(string)

	payment, err := h.paymentUseCase.Cancel(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

type refundPaymentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	var req refundPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actorID := c.Get("uid").(string)

	payment, err := h.paymentUseCase.Refund(c.Request().Context(), actorID, c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	userID := c.Get("uid").(string)

	payment, err := h.paymentUseCase.GetPaymentByID(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	payments, total, err := h.paymentUseCase.ListPayments(c.Request().Context(), userID, c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, payments, total, pagination.Page, pagination.PageSize)
}
