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

type firestorePartRepository struct {
	client *firestore.Client
}

func NewFirestorePartRepository(client *firestore.Client) repository.PartRepository {
	return &firestorePartRepository{
		client: client,
	}
}

func (r *firestorePartRepository) Create(ctx context.Context, part *entity.Part) error {
	if part.ID == "" {
		doc := r.client.Collection("parts").NewDoc()
		part.ID = doc.ID
	}

	now := time.Now()
	if part.CreatedAt.IsZero() {
		part.CreatedAt = now
	}
	part.UpdatedAt = now

	_, err := r.client.Collection("parts").Doc(part.ID).Set(ctx, part)
	if err != nil {
		return errors.Internal("Failed to create part", err)
	}

	return nil
}

func (r *firestorePartRepository) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	doc, err := r.client.Collection("parts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Part", err)
		}
		return nil, errors.Internal("Failed to get part", err)
	}

	var part entity.Part
	if err := doc.DataTo(&part); err != nil {
		return nil, errors.Internal("Failed to parse part data", err)
	}

	if part.DeletedAt != nil {
		return nil, errors.NotFound("Part", nil)
	}

	return &part, nil
}

func (r *firestorePartRepository) Update(ctx context.Context, part *entity.Part) error {
	part.UpdatedAt = time.Now()

	_, err := r.client.Collection("parts").Doc(part.ID).Set(ctx, part)
	if err != nil {
		return errors.Internal("Failed to update part", err)
	}

	return nil
}

func (r *firestorePartRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("parts").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "status", Value: entity.ListingStatusInactive},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to delete part", err)
	}

	return nil
}

func (r *firestorePartRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Part, int64, error) {
	query := r.client.Collection("parts").Query.Where("deletedAt", "==", nil)

	for key, value := range filter {
		switch key {
		case "priceMin":
			query = query.Where("price", ">=", value)
		case "priceMax":
			query = query.Where("price", "<=", value)
		case "compatibleMake":
			query = query.Where("compatibleMakes", "array-contains", value)
		default:
			query = query.Where(key, "==", value)
		}
	}

	query = query.OrderBy("boosted", firestore.Desc).OrderBy("featured", firestore.Desc)

	field, order := parseSort(sort, "createdAt")
	query = query.OrderBy(field, order)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count parts", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var parts []*entity.Part

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate parts", err)
		}

		var part entity.Part
		if err := doc.DataTo(&part); err != nil {
			return nil, 0, errors.Internal("Failed to parse part data", err)
		}
		parts = append(parts, &part)
	}

	return parts, total, nil
}

func (r *firestorePartRepository) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Part, int64, error) {
	query := r.client.Collection("parts").Query.Where("sellerId", "==", sellerID).Where("deletedAt", "==", nil)

	if status != "" {
		query = query.Where("status", "==", status)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count seller parts", err)
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
	var parts []*entity.Part

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate seller parts", err)
		}

		var part entity.Part
		if err := doc.DataTo(&part); err != nil {
			return nil, 0, errors.Internal("Failed to parse part data", err)
		}
		parts = append(parts, &part)
	}

	return parts, total, nil
}

func (r *firestorePartRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("parts").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment part views", err)
	}

	return nil
}

func (r *firestorePartRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.client.Collection("parts").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update part status", err)
	}

	return nil
}
