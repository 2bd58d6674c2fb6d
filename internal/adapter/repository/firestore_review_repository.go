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

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		doc := r.client.Collection("reviews").NewDoc()
		review.ID = doc.ID
	}

	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	doc, err := r.client.Collection("reviews").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) GetBySwapAndReviewer(ctx context.Context, swapID, reviewerID string) (*entity.Review, error) {
	iter := r.client.Collection("reviews").
		Where("swapId", "==", swapID).
		Where("reviewerId", "==", reviewerID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Review", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	review.UpdatedAt = time.Now()

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to update review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection("reviews").Query.
		Where("targetId", "==", targetID).
		Where("status", "==", "active")

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reviews", err)
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
	var reviews []*entity.Review

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, 0, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}
