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

type firestorePaymentRepository struct {
	client *firestore.Client
}

func NewFirestorePaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return &firestorePaymentRepository{
		client: client,
	}
}

func (r *firestorePaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		doc := r.client.Collection("payments").NewDoc()
		payment.ID = doc.ID
	}

	now := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	_, err := r.client.Collection("payments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to create payment", err)
	}

	return nil
}

func (r *firestorePaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	doc, err := r.client.Collection("payments").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Payment", err)
		}
		return nil, errors.Internal("Failed to get payment", err)
	}

	var payment entity.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}

	return &payment, nil
}

func (r *firestorePaymentRepository) GetByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	iter := r.client.Collection("payments").Where("reference", "==", reference).Limit(1).Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Payment", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query payment by reference", err)
	}

	var payment entity.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}

	return &payment, nil
}

func (r *firestorePaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	payment.UpdatedAt = time.Now()

	_, err := r.client.Collection("payments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to update payment", err)
	}

	return nil
}

// UpdateStatus transitions inside a Firestore transaction so a concurrent
// verify call and webhook delivery cannot both complete the same payment.
func (r *firestorePaymentRepository) UpdateStatus(ctx context.Context, id, expectedStatus string, apply func(*entity.Payment)) (*entity.Payment, error) {
	var updated entity.Payment

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("payments").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Payment", err)
			}
			return err
		}

		var payment entity.Payment
		if err := doc.DataTo(&payment); err != nil {
			return err
		}

		if payment.Status != expectedStatus {
			return errors.Conflict("Payment status changed, please retry", nil)
		}

		apply(&payment)
		payment.UpdatedAt = time.Now()
		updated = payment

		return tx.Set(docRef, payment)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to update payment status", err)
	}

	return &updated, nil
}

func (r *firestorePaymentRepository) ListByUserID(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Payment, int64, error) {
	query := r.client.Collection("payments").Query.Where("userId", "==", userID)
	if status != "" {
		query = query.Where("status", "==", status)
	}

	return r.listPayments(ctx, query, limit, offset)
}

func (r *firestorePaymentRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Payment, int64, error) {
	query := r.client.Collection("payments").Query
	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	return r.listPayments(ctx, query, limit, offset)
}

func (r *firestorePaymentRepository) listPayments(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Payment, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count payments", err)
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
	var payments []*entity.Payment

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate payments", err)
		}

		var payment entity.Payment
		if err := doc.DataTo(&payment); err != nil {
			return nil, 0, errors.Internal("Failed to parse payment data", err)
		}
		payments = append(payments, &payment)
	}

	return payments, total, nil
}
