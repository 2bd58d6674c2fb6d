package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Part, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Part, int64, error)
	IncrementViews(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error
}
