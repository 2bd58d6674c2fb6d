package handler

import (
	"github.com/labstack/echo/v4"

	"gearswap/internal/usecase"
	"gearswap/pkg/response"
	"gearswap/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startChatRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	ListingType string `json:"listing_type" validate:"omitempty,oneof=vehicle part"`
	ListingID   string `json:"listing_id"`
	Message     string `json:"message"`
}

func (h *ChatHandler) StartChat(c echo.Context) error {
	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	chat, err := h.chatUseCase.StartChat(c.Request().Context(), userID, usecase.StartChatInput{
		RecipientID: req.RecipientID,
		ListingType: req.ListingType,
		ListingID:   req.ListingID,
		Message:     req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, chat)
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	senderID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), senderID, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	chats, total, err := h.chatUseCase.ListChats(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, c.Param("id"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}
