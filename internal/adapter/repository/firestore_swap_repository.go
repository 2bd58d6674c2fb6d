package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
)

type firestoreSwapRepository struct {
	client *firestore.Client
}

func NewFirestoreSwapRepository(client *firestore.Client) repository.SwapRepository {
	return &firestoreSwapRepository{
		client: client,
	}
}

func (r *firestoreSwapRepository) Create(ctx context.Context, swap *entity.Swap) error {
	if swap.ID == "" {
		doc := r.client.Collection("swaps").NewDoc()
		swap.ID = doc.ID
	}

	now := time.Now()
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = now
	}
	swap.UpdatedAt = now

	_, err := r.client.Collection("swaps").Doc(swap.ID).Set(ctx, swap)
	if err != nil {
		return errors.Internal("Failed to create swap", err)
	}

	return nil
}

func (r *firestoreSwapRepository) GetByID(ctx context.Context, id string) (*entity.Swap, error) {
	doc, err := r.client.Collection("swaps").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Swap", err)
		}
		return nil, errors.Internal("Failed to get swap", err)
	}

	var swap entity.Swap
	if err := doc.DataTo(&swap); err != nil {
		return nil, errors.Internal("Failed to parse swap data", err)
	}

	return &swap, nil
}

func (r *firestoreSwapRepository) Update(ctx context.Context, swap *entity.Swap) error {
	swap.UpdatedAt = time.Now()

	_, err := r.client.Collection("swaps").Doc(swap.ID).Set(ctx, swap)
	if err != nil {
		return errors.Internal("Failed to update swap", err)
	}

	return nil
}

// UpdateStatus runs the transition inside a Firestore transaction. The stored
// status is re-read and compared against expectedStatus, so a racing caller
// that already moved the swap makes this attempt fail with Conflict.
func (r *firestoreSwapRepository) UpdateStatus(ctx context.Context, id, expectedStatus string, apply func(*entity.Swap)) (*entity.Swap, error) {
	var updated entity.Swap

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("swaps").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Swap", err)
			}
			return err
		}

		var swap entity.Swap
		if err := doc.DataTo(&swap); err != nil {
			return err
		}

		if swap.Status != expectedStatus {
			return errors.Conflict("Swap status changed, please retry", nil)
		}

		apply(&swap)
		swap.UpdatedAt = time.Now()
		updated = swap

		return tx.Set(docRef, swap)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to update swap status", err)
	}

	return &updated, nil
}

func (r *firestoreSwapRepository) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Swap, int64, error) {
	field := "initiatorId"
	if role == "receiver" {
		field = "receiverId"
	}

	query := r.client.Collection("swaps").Query.Where(field, "==", userID)
	if status != "" {
		query = query.Where("status", "==", status)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count swaps", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var swaps []*entity.Swap

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate swaps", err)
		}

		var swap entity.Swap
		if err := doc.DataTo(&swap); err != nil {
			return nil, 0, errors.Internal("Failed to parse swap data", err)
		}
		swaps = append(swaps, &swap)
	}

	return swaps, total, nil
}

func (r *firestoreSwapRepository) CountActiveForItem(ctx context.Context, itemType, itemID string) (int, error) {
	query := r.client.Collection("swaps").Query.
		Where("requestedItemType", "==", itemType).
		Where("requestedItemId", "==", itemID).
		Where("status", "in", []string{entity.SwapStatusPending, entity.SwapStatusAccepted})

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count active swaps", err)
	}

	return len(docs), nil
}
