package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/utils"
)

type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewVehicleUseCase(vehicleRepo repository.VehicleRepository, userRepo repository.UserRepository, notifier Notifier) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

type CreateVehicleInput struct {
	Title       string
	Description string
	Make        string
	Model       string
	Year        int
	Mileage     int
	Price       float64
	Currency    string
	OpenToSwap  bool
	Images      []entity.ListingImage
}

type UpdateVehicleInput struct {
	Title       *string
	Description *string
	Make        *string
	Model       *string
	Year        *int
	Mileage     *int
	Price       *float64
	OpenToSwap  *bool
	Status      *string
	Images      []entity.ListingImage
}

// ListVehiclesParams narrows and orders the public catalog.
type ListVehiclesParams struct {
	Make       string
	Model      string
	YearMin    int
	YearMax    int
	PriceMin   float64
	PriceMax   float64
	OpenToSwap *bool
	Status     string
	Sort       string
	Page       int
	Limit      int
}

func (uc *VehicleUseCase) CreateVehicle(ctx context.Context, sellerID string, input CreateVehicleInput) (*entity.Vehicle, error) {
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	currentYear := time.Now().Year()
	if input.Year < 1900 || input.Year > currentYear+1 {
		return nil, errors.BadRequest("Invalid vehicle year", nil)
	}

	vehicle := &entity.Vehicle{
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Make:        input.Make,
		Model:       input.Model,
		Year:        input.Year,
		Mileage:     input.Mileage,
		Price:       input.Price,
		Currency:    input.Currency,
		Status:      entity.ListingStatusPending,
		OpenToSwap:  input.OpenToSwap,
		Images:      assignImageIDs(input.Images),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uc.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (uc *VehicleUseCase) GetVehicleByID(ctx context.Context, id string, countView bool) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if countView {
		if err := uc.vehicleRepo.IncrementViews(ctx, id); err != nil {
			logger.Warn("Failed to count view for vehicle %s: %v", id, err)
		}
	}

	return vehicle, nil
}

func (uc *VehicleUseCase) UpdateVehicle(ctx context.Context, actorID, vehicleID string, input UpdateVehicleInput) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if err := uc.requireOwnerOrAdmin(ctx, actorID, vehicle.SellerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		vehicle.Title = *input.Title
	}
	if input.Description != nil {
		vehicle.Description = *input.Description
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Mileage != nil {
		vehicle.Mileage = *input.Mileage
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price cannot be negative", nil)
		}
		vehicle.Price = *input.Price
	}
	if input.OpenToSwap != nil {
		vehicle.OpenToSwap = *input.OpenToSwap
	}
	if input.Status != nil {
		if !isOwnerSettableStatus(*input.Status) {
			return nil, errors.BadRequest("Invalid listing status", nil)
		}
		vehicle.Status = *input.Status
	}
	if input.Images != nil {
		vehicle.Images = assignImageIDs(input.Images)
	}

	vehicle.UpdatedAt = time.Now()

	if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (uc *VehicleUseCase) DeleteVehicle(ctx context.Context, actorID, vehicleID string) error {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	if err := uc.requireOwnerOrAdmin(ctx, actorID, vehicle.SellerID); err != nil {
		return err
	}

	return uc.vehicleRepo.SoftDelete(ctx, vehicleID)
}

func (uc *VehicleUseCase) ListVehicles(ctx context.Context, params ListVehiclesParams) ([]*entity.Vehicle, int64, error) {
	pagination := utils.NewPaginationParams(params.Page, params.Limit)

	filter := make(map[string]interface{})
	if params.Make != "" {
		filter["make"] = params.Make
	}
	if params.Model != "" {
		filter["model"] = params.Model
	}
	if params.YearMin > 0 {
		filter["yearMin"] = params.YearMin
	}
	if params.YearMax > 0 {
		filter["yearMax"] = params.YearMax
	}
	if params.PriceMin > 0 {
		filter["priceMin"] = params.PriceMin
	}
	if params.PriceMax > 0 {
		filter["priceMax"] = params.PriceMax
	}
	if params.OpenToSwap != nil {
		filter["openToSwap"] = *params.OpenToSwap
	}

	status := params.Status
	if status == "" {
		status = entity.ListingStatusActive
	}
	filter["status"] = status

	return uc.vehicleRepo.List(ctx, filter, params.Sort, pagination.PageSize, pagination.Offset)
}

func (uc *VehicleUseCase) SearchVehicles(ctx context.Context, query string, page, limit int) ([]*entity.Vehicle, int64, error) {
	if query == "" {
		return nil, 0, errors.BadRequest("Search query is required", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)
	filter := map[string]interface{}{"status": entity.ListingStatusActive}

	return uc.vehicleRepo.SearchByTitle(ctx, query, filter, pagination.PageSize, pagination.Offset)
}

func (uc *VehicleUseCase) ListSellerVehicles(ctx context.Context, sellerID, status string, page, limit int) ([]*entity.Vehicle, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.vehicleRepo.ListBySellerID(ctx, sellerID, status, pagination.PageSize, pagination.Offset)
}

// ApproveVehicle takes a pending listing live. Admin only, enforced by the
// route middleware.
func (uc *VehicleUseCase) ApproveVehicle(ctx context.Context, vehicleID string) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.Status != entity.ListingStatusPending {
		return nil, errors.BadRequest("Only pending listings can be approved", nil)
	}

	if err := uc.vehicleRepo.UpdateStatus(ctx, vehicleID, entity.ListingStatusActive); err != nil {
		return nil, err
	}
	vehicle.Status = entity.ListingStatusActive

	uc.notifier.Notify(ctx, vehicle.SellerID, NotificationPayload{
		Type:    entity.NotificationListingApproved,
		Title:   "Listing approved",
		Message: "Your vehicle listing is now live",
		Data:    map[string]interface{}{"vehicle_id": vehicle.ID},
	}, NotificationChannels{InApp: true, Email: true, SMS: true})

	return vehicle, nil
}

func (uc *VehicleUseCase) requireOwnerOrAdmin(ctx context.Context, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}

	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil || actor.Role != "admin" {
		return errors.Forbidden("You don't have permission to modify this listing", nil)
	}

	return nil
}

// assignImageIDs gives every new image a stable id so clients can reorder
// and delete individual images later.
func assignImageIDs(images []entity.ListingImage) []entity.ListingImage {
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = uuid.New().String()
		}
	}
	return images
}

// Owners may pause, relist or mark their listing sold; the remaining statuses
// are set by the system (swap completion, approval, expiry).
func isOwnerSettableStatus(status string) bool {
	switch status {
	case entity.ListingStatusActive, entity.ListingStatusInactive, entity.ListingStatusSold:
		return true
	}
	return false
}
