package usecase

import (
	"context"
	"fmt"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/utils"
)

type SwapUseCase struct {
	swapRepo    repository.SwapRepository
	vehicleRepo repository.VehicleRepository
	partRepo    repository.PartRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewSwapUseCase(
	swapRepo repository.SwapRepository,
	vehicleRepo repository.VehicleRepository,
	partRepo repository.PartRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *SwapUseCase {
	return &SwapUseCase{
		swapRepo:    swapRepo,
		vehicleRepo: vehicleRepo,
		partRepo:    partRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

type ProposeSwapInput struct {
	OfferedVehicleID  string
	RequestedItemType string
	RequestedItemID   string
	Message           string
	AdditionalCash    float64
	Currency          string
}

// SwapResponse attaches both party summaries and the offered vehicle.
type SwapResponse struct {
	*entity.Swap
	Initiator      *entity.UserSummary `json:"initiator,omitempty"`
	Receiver       *entity.UserSummary `json:"receiver,omitempty"`
	OfferedVehicle *entity.Vehicle     `json:"offered_vehicle,omitempty"`
}

func (uc *SwapUseCase) Propose(ctx context.Context, initiatorID string, input ProposeSwapInput) (*SwapResponse, error) {
	offered, err := uc.vehicleRepo.GetByID(ctx, input.OfferedVehicleID)
	if err != nil {
		return nil, errors.BadRequest("Invalid offered vehicle", err)
	}

	if offered.SellerID != initiatorID {
		return nil, errors.BadRequest("You can only offer your own vehicle", nil)
	}

	if offered.Status != entity.ListingStatusActive {
		return nil, errors.BadRequest("Offered vehicle is not available", nil)
	}

	receiverID, err := uc.resolveItemOwner(ctx, input.RequestedItemType, input.RequestedItemID)
	if err != nil {
		return nil, err
	}

	if receiverID == initiatorID {
		return nil, errors.BadRequest("Cannot swap with yourself", nil)
	}

	if input.AdditionalCash < 0 {
		return nil, errors.BadRequest("Additional cash cannot be negative", nil)
	}

	swap := &entity.Swap{
		InitiatorID:       initiatorID,
		ReceiverID:        receiverID,
		OfferedVehicleID:  input.OfferedVehicleID,
		RequestedItemType: input.RequestedItemType,
		RequestedItemID:   input.RequestedItemID,
		AdditionalCash:    input.AdditionalCash,
		Currency:          input.Currency,
		Status:            entity.SwapStatusPending,
		Message:           input.Message,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := uc.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, receiverID, NotificationPayload{
		Type:    entity.NotificationSwapProposal,
		Title:   "New swap proposal",
		Message: fmt.Sprintf("You received a swap proposal for your %s", input.RequestedItemType),
		Data: map[string]interface{}{
			"swap_id":             swap.ID,
			"offered_vehicle_id":  swap.OfferedVehicleID,
			"requested_item_type": swap.RequestedItemType,
			"requested_item_id":   swap.RequestedItemID,
		},
	}, NotificationChannels{InApp: true, Email: true})

	return uc.prepareSwapResponse(ctx, swap), nil
}

func (uc *SwapUseCase) Accept(ctx context.Context, swapID, actorID, responseNote string) (*SwapResponse, error) {
	return uc.respond(ctx, swapID, actorID, responseNote, entity.SwapStatusAccepted)
}

func (uc *SwapUseCase) Reject(ctx context.Context, swapID, actorID, responseNote string) (*SwapResponse, error) {
	return uc.respond(ctx, swapID, actorID, responseNote, entity.SwapStatusRejected)
}

func (uc *SwapUseCase) respond(ctx context.Context, swapID, actorID, responseNote, newStatus string) (*SwapResponse, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if swap.ReceiverID != actorID {
		return nil, errors.Forbidden("Only the receiver can respond to this swap", nil)
	}

	if swap.Status != entity.SwapStatusPending {
		return nil, errors.BadRequest("Swap is no longer pending", nil)
	}

	now := time.Now()
	updated, err := uc.swapRepo.UpdateStatus(ctx, swapID, entity.SwapStatusPending, func(s *entity.Swap) {
		s.Status = newStatus
		s.ResponseNote = responseNote
		s.RespondedAt = &now
	})
	if err != nil {
		return nil, err
	}

	notifType := entity.NotificationSwapAccepted
	title := "Swap proposal accepted"
	message := "Your swap proposal was accepted"
	channels := NotificationChannels{InApp: true, Email: true, SMS: true}

	if newStatus == entity.SwapStatusRejected {
		notifType = entity.NotificationSwapRejected
		title = "Swap proposal rejected"
		message = "Your swap proposal was rejected"
		channels = NotificationChannels{InApp: true}
	}

	uc.notifier.Notify(ctx, updated.InitiatorID, NotificationPayload{
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    map[string]interface{}{"swap_id": updated.ID},
	}, channels)

	return uc.prepareSwapResponse(ctx, updated), nil
}

func (uc *SwapUseCase) Cancel(ctx context.Context, swapID, actorID string) (*SwapResponse, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParty(actorID) {
		return nil, errors.Forbidden("You are not a party to this swap", nil)
	}

	if swap.Status == entity.SwapStatusCompleted {
		return nil, errors.BadRequest("Cannot cancel a completed swap", nil)
	}

	if swap.IsTerminal() {
		return nil, errors.BadRequest("Swap is already closed", nil)
	}

	now := time.Now()
	updated, err := uc.swapRepo.UpdateStatus(ctx, swapID, swap.Status, func(s *entity.Swap) {
		s.Status = entity.SwapStatusCancelled
		s.CancelledAt = &now
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, updated.OtherParty(actorID), NotificationPayload{
		Type:    entity.NotificationSwapCancelled,
		Title:   "Swap cancelled",
		Message: "The swap was cancelled by the other party",
		Data:    map[string]interface{}{"swap_id": updated.ID},
	}, DefaultChannels())

	return uc.prepareSwapResponse(ctx, updated), nil
}

// Complete marks an accepted swap as completed and applies the inventory and
// statistics side effects. The status flip is guarded by a compare-and-set so
// two racing complete calls cannot both win; the side effects that follow are
// best-effort and logged on failure.
func (uc *SwapUseCase) Complete(ctx context.Context, swapID, actorID string) (*SwapResponse, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParty(actorID) {
		return nil, errors.Forbidden("You are not a party to this swap", nil)
	}

	if swap.Status != entity.SwapStatusAccepted {
		return nil, errors.BadRequest("Swap must be accepted before completion", nil)
	}

	now := time.Now()
	updated, err := uc.swapRepo.UpdateStatus(ctx, swapID, entity.SwapStatusAccepted, func(s *entity.Swap) {
		s.Status = entity.SwapStatusCompleted
		s.CompletedAt = &now
	})
	if err != nil {
		return nil, err
	}

	uc.applyCompletionSideEffects(ctx, updated)

	for _, partyID := range []string{updated.InitiatorID, updated.ReceiverID} {
		uc.notifier.Notify(ctx, partyID, NotificationPayload{
			Type:    entity.NotificationSwapCompleted,
			Title:   "Swap completed",
			Message: "Your swap was completed",
			Data:    map[string]interface{}{"swap_id": updated.ID},
		}, NotificationChannels{InApp: true, Email: true})
	}

	return uc.prepareSwapResponse(ctx, updated), nil
}

func (uc *SwapUseCase) applyCompletionSideEffects(ctx context.Context, swap *entity.Swap) {
	if err := uc.vehicleRepo.UpdateStatus(ctx, swap.OfferedVehicleID, entity.ListingStatusSwapped); err != nil {
		logger.Error("Failed to mark offered vehicle %s swapped for swap %s: %v", swap.OfferedVehicleID, swap.ID, err)
	}

	switch swap.RequestedItemType {
	case entity.SwapItemTypeVehicle:
		if err := uc.vehicleRepo.UpdateStatus(ctx, swap.RequestedItemID, entity.ListingStatusSwapped); err != nil {
			logger.Error("Failed to mark requested vehicle %s swapped for swap %s: %v", swap.RequestedItemID, swap.ID, err)
		}
	case entity.SwapItemTypePart:
		if err := uc.partRepo.UpdateStatus(ctx, swap.RequestedItemID, entity.ListingStatusSwapped); err != nil {
			logger.Error("Failed to mark requested part %s swapped for swap %s: %v", swap.RequestedItemID, swap.ID, err)
		}
	}

	for _, partyID := range []string{swap.InitiatorID, swap.ReceiverID} {
		if err := uc.userRepo.IncrementTotalSwaps(ctx, partyID); err != nil {
			logger.Error("Failed to increment swap counter for user %s: %v", partyID, err)
		}
	}
}

func (uc *SwapUseCase) GetSwapByID(ctx context.Context, userID, swapID string) (*SwapResponse, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParty(userID) {
		return nil, errors.Forbidden("You don't have permission to view this swap", nil)
	}

	return uc.prepareSwapResponse(ctx, swap), nil
}

func (uc *SwapUseCase) ListSwaps(ctx context.Context, userID, role, status string, page, limit int) ([]*SwapResponse, int64, error) {
	if role != "initiator" && role != "receiver" {
		role = "initiator"
	}

	pagination := utils.NewPaginationParams(page, limit)

	swaps, total, err := uc.swapRepo.ListByUserID(ctx, userID, role, status, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*SwapResponse, len(swaps))
	for i, swap := range swaps {
		responses[i] = uc.prepareSwapResponse(ctx, swap)
	}

	return responses, total, nil
}

func (uc *SwapUseCase) resolveItemOwner(ctx context.Context, itemType, itemID string) (string, error) {
	switch itemType {
	case entity.SwapItemTypeVehicle:
		vehicle, err := uc.vehicleRepo.GetByID(ctx, itemID)
		if err != nil {
			return "", err
		}
		return vehicle.SellerID, nil
	case entity.SwapItemTypePart:
		part, err := uc.partRepo.GetByID(ctx, itemID)
		if err != nil {
			return "", err
		}
		return part.SellerID, nil
	default:
		return "", errors.BadRequest("Invalid requested item type", nil)
	}
}

func (uc *SwapUseCase) prepareSwapResponse(ctx context.Context, swap *entity.Swap) *SwapResponse {
	response := &SwapResponse{Swap: swap}

	if initiator, err := uc.userRepo.GetByID(ctx, swap.InitiatorID); err == nil {
		summary := initiator.Summary()
		response.Initiator = &summary
	}

	if receiver, err := uc.userRepo.GetByID(ctx, swap.ReceiverID); err == nil {
		summary := receiver.Summary()
		response.Receiver = &summary
	}

	if vehicle, err := uc.vehicleRepo.GetByID(ctx, swap.OfferedVehicleID); err == nil {
		response.OfferedVehicle = vehicle
	}

	return response
}
