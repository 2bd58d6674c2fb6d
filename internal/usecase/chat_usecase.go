package usecase

import (
	"context"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/utils"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewChatUseCase(chatRepo repository.ChatRepository, userRepo repository.UserRepository, notifier Notifier) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

type StartChatInput struct {
	RecipientID string
	ListingType string
	ListingID   string
	Message     string
}

// StartChat opens (or reuses) the conversation between two users about a
// listing, optionally sending an opening message.
func (uc *ChatUseCase) StartChat(ctx context.Context, userID string, input StartChatInput) (*entity.Chat, error) {
	if input.RecipientID == userID {
		return nil, errors.BadRequest("Cannot start a chat with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		return nil, err
	}

	chat, err := uc.chatRepo.FindByParticipants(ctx, userID, input.RecipientID, input.ListingType, input.ListingID)
	if err != nil {
		return nil, err
	}

	if chat == nil {
		chat = &entity.Chat{
			Participants: []string{userID, input.RecipientID},
			ListingType:  input.ListingType,
			ListingID:    input.ListingID,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			return nil, err
		}
	}

	if input.Message != "" {
		if _, err := uc.SendMessage(ctx, userID, chat.ID, input.Message); err != nil {
			return nil, err
		}
	}

	return chat, nil
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID, content string) (*entity.Message, error) {
	if content == "" {
		return nil, errors.BadRequest("Message cannot be empty", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(chat, senderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message := &entity.Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Type:      "text",
		CreatedAt: time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = content
	chat.LastSentAt = message.CreatedAt
	chat.UpdatedAt = message.CreatedAt
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Warn("Failed to update chat %s preview: %v", chatID, err)
	}

	for _, participantID := range chat.Participants {
		if participantID == senderID {
			continue
		}
		uc.notifier.Notify(ctx, participantID, NotificationPayload{
			Type:    entity.NotificationNewMessage,
			Title:   "New message",
			Message: content,
			Data:    map[string]interface{}{"chat_id": chatID, "message_id": message.ID},
		}, DefaultChannels())
	}

	return message, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, page, limit int) ([]*entity.Chat, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.chatRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string, page, limit int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !isParticipant(chat, userID) {
		return nil, 0, errors.Forbidden("You are not a participant in this chat", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)

	messages, total, err := uc.chatRepo.ListMessages(ctx, chatID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, chatID, userID); err != nil {
		logger.Warn("Failed to mark messages read in chat %s: %v", chatID, err)
	}

	return messages, total, nil
}

func isParticipant(chat *entity.Chat, userID string) bool {
	for _, id := range chat.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
