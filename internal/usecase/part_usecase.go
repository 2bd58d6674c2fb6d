package usecase

import (
	"context"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/utils"
)

var partConditions = map[string]bool{
	"new":         true,
	"used":        true,
	"refurbished": true,
}

type PartUseCase struct {
	partRepo repository.PartRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewPartUseCase(partRepo repository.PartRepository, userRepo repository.UserRepository, notifier Notifier) *PartUseCase {
	return &PartUseCase{
		partRepo: partRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

type CreatePartInput struct {
	Title           string
	Description     string
	Category        string
	Condition       string
	CompatibleMakes []string
	Price           float64
	Currency        string
	OpenToSwap      bool
	Images          []entity.ListingImage
}

type UpdatePartInput struct {
	Title           *string
	Description     *string
	Category        *string
	Condition       *string
	CompatibleMakes []string
	Price           *float64
	OpenToSwap      *bool
	Status          *string
	Images          []entity.ListingImage
}

type ListPartsParams struct {
	Category   string
	Condition  string
	Make       string
	PriceMin   float64
	PriceMax   float64
	OpenToSwap *bool
	Status     string
	Sort       string
	Page       int
	Limit      int
}

func (uc *PartUseCase) CreatePart(ctx context.Context, sellerID string, input CreatePartInput) (*entity.Part, error) {
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	if !partConditions[input.Condition] {
		return nil, errors.BadRequest("Condition must be new, used or refurbished", nil)
	}

	part := &entity.Part{
		SellerID:        sellerID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Condition:       input.Condition,
		CompatibleMakes: input.CompatibleMakes,
		Price:           input.Price,
		Currency:        input.Currency,
		Status:          entity.ListingStatusPending,
		OpenToSwap:      input.OpenToSwap,
		Images:          assignImageIDs(input.Images),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := uc.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}

	return part, nil
}

func (uc *PartUseCase) GetPartByID(ctx context.Context, id string, countView bool) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if countView {
		if err := uc.partRepo.IncrementViews(ctx, id); err != nil {
			logger.Warn("Failed to count view for part %s: %v", id, err)
		}
	}

	return part, nil
}

func (uc *PartUseCase) UpdatePart(ctx context.Context, actorID, partID string, input UpdatePartInput) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}

	if err := uc.requireOwnerOrAdmin(ctx, actorID, part.SellerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		part.Title = *input.Title
	}
	if input.Description != nil {
		part.Description = *input.Description
	}
	if input.Category != nil {
		part.Category = *input.Category
	}
	if input.Condition != nil {
		if !partConditions[*input.Condition] {
			return nil, errors.BadRequest("Condition must be new, used or refurbished", nil)
		}
		part.Condition = *input.Condition
	}
	if input.CompatibleMakes != nil {
		part.CompatibleMakes = input.CompatibleMakes
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price cannot be negative", nil)
		}
		part.Price = *input.Price
	}
	if input.OpenToSwap != nil {
		part.OpenToSwap = *input.OpenToSwap
	}
	if input.Status != nil {
		if !isOwnerSettableStatus(*input.Status) {
			return nil, errors.BadRequest("Invalid listing status", nil)
		}
		part.Status = *input.Status
	}
	if input.Images != nil {
		part.Images = assignImageIDs(input.Images)
	}

	part.UpdatedAt = time.Now()

	if err := uc.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}

	return part, nil
}

func (uc *PartUseCase) DeletePart(ctx context.Context, actorID, partID string) error {
	part, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return err
	}

	if err := uc.requireOwnerOrAdmin(ctx, actorID, part.SellerID); err != nil {
		return err
	}

	return uc.partRepo.SoftDelete(ctx, partID)
}

func (uc *PartUseCase) ListParts(ctx context.Context, params ListPartsParams) ([]*entity.Part, int64, error) {
	pagination := utils.NewPaginationParams(params.Page, params.Limit)

	filter := make(map[string]interface{})
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.Condition != "" {
		filter["condition"] = params.Condition
	}
	if params.Make != "" {
		filter["compatibleMake"] = params.Make
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

	return uc.partRepo.List(ctx, filter, params.Sort, pagination.PageSize, pagination.Offset)
}

func (uc *PartUseCase) ListSellerParts(ctx context.Context, sellerID, status string, page, limit int) ([]*entity.Part, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.partRepo.ListBySellerID(ctx, sellerID, status, pagination.PageSize, pagination.Offset)
}

func (uc *PartUseCase) ApprovePart(ctx context.Context, partID string) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}

	if part.Status != entity.ListingStatusPending {
		return nil, errors.BadRequest("Only pending listings can be approved", nil)
	}

	if err := uc.partRepo.UpdateStatus(ctx, partID, entity.ListingStatusActive); err != nil {
		return nil, err
	}
	part.Status = entity.ListingStatusActive

	uc.notifier.Notify(ctx, part.SellerID, NotificationPayload{
		Type:    entity.NotificationListingApproved,
		Title:   "Listing approved",
		Message: "Your part listing is now live",
		Data:    map[string]interface{}{"part_id": part.ID},
	}, NotificationChannels{InApp: true, Email: true, SMS: true})

	return part, nil
}

func (uc *PartUseCase) requireOwnerOrAdmin(ctx context.Context, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}

	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil || actor.Role != "admin" {
		return errors.Forbidden("You don't have permission to modify this listing", nil)
	}

	return nil
}
