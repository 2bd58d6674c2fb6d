package handler

import (
	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)
	unreadOnly := c.QueryParam("unread") == "true"

	notifications, total, err := h.notificationUseCase.ListNotifications(c.Request().Context(), userID, unreadOnly, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, notifications, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.notificationUseCase.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"unread": count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllRead(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.DeleteNotification(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *NotificationHandler) ClearNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.ClearNotifications(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "cleared"})
}
