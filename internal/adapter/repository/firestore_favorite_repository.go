package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, favorite *entity.Favorite) error {
	if favorite.ID == "" {
		doc := r.client.Collection("favorites").NewDoc()
		favorite.ID = doc.ID
	}

	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("favorites").Doc(favorite.ID).Set(ctx, favorite)
	if err != nil {
		return errors.Internal("Failed to add favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, itemType, itemID string) error {
	docs, err := r.favoriteQuery(userID, itemType, itemID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to find favorite", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to remove favorite", err)
		}
	}

	return nil
}

func (r *firestoreFavoriteRepository) Exists(ctx context.Context, userID, itemType, itemID string) (bool, error) {
	iter := r.favoriteQuery(userID, itemType, itemID).Limit(1).Documents(ctx)

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal("Failed to check favorite", err)
	}

	return true, nil
}

func (r *firestoreFavoriteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error) {
	query := r.client.Collection("favorites").Query.Where("userId", "==", userID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count favorites", err)
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
	var favorites []*entity.Favorite

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			return nil, 0, errors.Internal("Failed to parse favorite data", err)
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, total, nil
}

func (r *firestoreFavoriteRepository) favoriteQuery(userID, itemType, itemID string) firestore.Query {
	return r.client.Collection("favorites").Query.
		Where("userId", "==", userID).
		Where("itemType", "==", itemType).
		Where("itemId", "==", itemID)
}
