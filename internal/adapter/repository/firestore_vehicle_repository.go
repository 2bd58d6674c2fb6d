package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
)

type firestoreVehicleRepository struct {
	client *firestore.Client
}

func NewFirestoreVehicleRepository(client *firestore.Client) repository.VehicleRepository {
	return &firestoreVehicleRepository{
		client: client,
	}
}

func (r *firestoreVehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	if vehicle.ID == "" {
		doc := r.client.Collection("vehicles").NewDoc()
		vehicle.ID = doc.ID
	}

	now := time.Now()
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = now
	}
	vehicle.UpdatedAt = now

	_, err := r.client.Collection("vehicles").Doc(vehicle.ID).Set(ctx, vehicle)
	if err != nil {
		return errors.Internal("Failed to create vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	doc, err := r.client.Collection("vehicles").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Vehicle", err)
		}
		return nil, errors.Internal("Failed to get vehicle", err)
	}

	var vehicle entity.Vehicle
	if err := doc.DataTo(&vehicle); err != nil {
		return nil, errors.Internal("Failed to parse vehicle data", err)
	}

	if vehicle.DeletedAt != nil {
		return nil, errors.NotFound("Vehicle", nil)
	}

	return &vehicle, nil
}

func (r *firestoreVehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	vehicle.UpdatedAt = time.Now()

	_, err := r.client.Collection("vehicles").Doc(vehicle.ID).Set(ctx, vehicle)
	if err != nil {
		return errors.Internal("Failed to update vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("vehicles").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "status", Value: entity.ListingStatusInactive},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to delete vehicle", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	query := applyVehicleFilters(r.client.Collection("vehicles").Query.Where("deletedAt", "==", nil), filter)

	// Promoted listings surface first, then the requested ordering.
	query = query.OrderBy("boosted", firestore.Desc).OrderBy("featured", firestore.Desc)

	field, order := parseSort(sort, "createdAt")
	query = query.OrderBy(field, order)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count vehicles", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var vehicles []*entity.Vehicle

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate vehicles", err)
		}

		var vehicle entity.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			return nil, 0, errors.Internal("Failed to parse vehicle data", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}

func (r *firestoreVehicleRepository) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	query := r.client.Collection("vehicles").Query.Where("sellerId", "==", sellerID).Where("deletedAt", "==", nil)

	if status != "" {
		query = query.Where("status", "==", status)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count seller vehicles", err)
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
	var vehicles []*entity.Vehicle

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate seller vehicles", err)
		}

		var vehicle entity.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			return nil, 0, errors.Internal("Failed to parse vehicle data", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}

func (r *firestoreVehicleRepository) SearchByTitle(ctx context.Context, search string, filter map[string]interface{}, limit, offset int) ([]*entity.Vehicle, int64, error) {
	// Firestore has no full-text search, so match titles client-side. Fine at
	// this catalog size; a search service would replace this at scale.
	search = strings.ToLower(search)

	query := applyVehicleFilters(r.client.Collection("vehicles").Query.Where("deletedAt", "==", nil), filter)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to search vehicles", err)
	}

	var matched []*entity.Vehicle
	for _, doc := range docs {
		var vehicle entity.Vehicle
		if err := doc.DataTo(&vehicle); err != nil {
			continue
		}

		if strings.Contains(strings.ToLower(vehicle.Title), search) {
			matched = append(matched, &vehicle)
		}
	}

	total := int64(len(matched))

	start := offset
	end := offset + limit
	if start >= len(matched) {
		return []*entity.Vehicle{}, total, nil
	}
	if end > len(matched) || limit <= 0 {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *firestoreVehicleRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("vehicles").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment vehicle views", err)
	}

	return nil
}

func (r *firestoreVehicleRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.client.Collection("vehicles").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update vehicle status", err)
	}

	return nil
}

func applyVehicleFilters(query firestore.Query, filter map[string]interface{}) firestore.Query {
	for key, value := range filter {
		switch key {
		case "yearMin":
			query = query.Where("year", ">=", value)
		case "yearMax":
			query = query.Where("year", "<=", value)
		case "priceMin":
			query = query.Where("price", ">=", value)
		case "priceMax":
			query = query.Where("price", "<=", value)
		default:
			query = query.Where(key, "==", value)
		}
	}
	return query
}

func parseSort(sort, defaultField string) (string, firestore.Direction) {
	if sort == "" {
		return defaultField, firestore.Desc
	}

	parts := strings.Split(sort, "_")
	field := parts[0]
	order := firestore.Asc
	if len(parts) > 1 && parts[1] == "desc" {
		order = firestore.Desc
	}
	return field, order
}
