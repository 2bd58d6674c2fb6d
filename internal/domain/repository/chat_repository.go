package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	FindByParticipants(ctx context.Context, userA, userB, listingType, listingID string) (*entity.Chat, error)
	Update(ctx context.Context, chat *entity.Chat) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
	MarkMessagesRead(ctx context.Context, chatID, readerID string) error
}
