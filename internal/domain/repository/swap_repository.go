package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type SwapRepository interface {
	Create(ctx context.Context, swap *entity.Swap) error
	GetByID(ctx context.Context, id string) (*entity.Swap, error)
	Update(ctx context.Context, swap *entity.Swap) error

	// UpdateStatus transitions the swap only when its stored status still
	// equals expectedStatus, so two racing requests cannot both win.
	UpdateStatus(ctx context.Context, id, expectedStatus string, apply func(*entity.Swap)) (*entity.Swap, error)

	ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Swap, int64, error)
	CountActiveForItem(ctx context.Context, itemType, itemID string) (int, error)
}
