package repository

import (
	"context"

	"gearswap/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetByReference(ctx context.Context, reference string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error

	// UpdateStatus transitions the payment only when its stored status still
	// equals expectedStatus.
	UpdateStatus(ctx context.Context, id, expectedStatus string, apply func(*entity.Payment)) (*entity.Payment, error)

	ListByUserID(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Payment, int64, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Payment, int64, error)
}
