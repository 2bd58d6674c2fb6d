package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
	DeleteAllByUserID(ctx context.Context, userID string) error
}
