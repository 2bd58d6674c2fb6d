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

type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
	vehicleRepo repository.VehicleRepository
	partRepo    repository.PartRepository
	swapRepo    repository.SwapRepository
	reviewRepo  repository.ReviewRepository
	notifier    Notifier
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	partRepo repository.PartRepository,
	swapRepo repository.SwapRepository,
	reviewRepo repository.ReviewRepository,
	notifier Notifier,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		partRepo:    partRepo,
		swapRepo:    swapRepo,
		reviewRepo:  reviewRepo,
		notifier:    notifier,
	}
}

type SubmitReportInput struct {
	TargetType  string
	TargetID    string
	Reason      string
	Description string
}

func (uc *ReportUseCase) Submit(ctx context.Context, reporterID string, input SubmitReportInput) (*entity.Report, error) {
	targetType := entity.ReportTargetType(input.TargetType)
	if !targetType.Valid() {
		return nil, errors.BadRequest("Invalid report target type", nil)
	}

	target := entity.ReportTarget{Type: targetType, ID: input.TargetID}

	if err := uc.assertTargetExists(ctx, target); err != nil {
		return nil, err
	}

	existing, err := uc.reportRepo.FindOpenByReporterAndTarget(ctx, reporterID, target)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("You already have an open report on this target", nil)
	}

	report := &entity.Report{
		ReporterID:  reporterID,
		Target:      target,
		Reason:      input.Reason,
		Description: input.Description,
		Status:      entity.ReportStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	logger.Info("Report %s submitted by %s against %s %s", report.ID, reporterID, target.Type, target.ID)
	return report, nil
}

func (uc *ReportUseCase) GetReportByID(ctx context.Context, reportID string) (*entity.Report, error) {
	return uc.reportRepo.GetByID(ctx, reportID)
}

func (uc *ReportUseCase) ListReports(ctx context.Context, status string, page, limit int) ([]*entity.Report, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)

	filter := make(map[string]interface{})
	if status != "" {
		filter["status"] = status
	}

	return uc.reportRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

type ResolveReportInput struct {
	Status     string
	Resolution string
	Action     string
}

// Resolve closes a report and applies the chosen remediation to the typed
// target. Remediation failures abort the resolution so an admin never sees a
// report marked resolved while the action silently failed.
func (uc *ReportUseCase) Resolve(ctx context.Context, adminID, reportID string, input ResolveReportInput) (*entity.Report, error) {
	if input.Status != entity.ReportStatusResolved && input.Status != entity.ReportStatusDismissed {
		return nil, errors.BadRequest("Resolution status must be resolved or dismissed", nil)
	}

	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if report.Status == entity.ReportStatusResolved || report.Status == entity.ReportStatusDismissed {
		return nil, errors.BadRequest("Report is already closed", nil)
	}

	action := input.Action
	if action == "" || input.Status == entity.ReportStatusDismissed {
		action = entity.ReportActionNone
	}

	if err := uc.applyRemediation(ctx, report.Target, action); err != nil {
		return nil, err
	}

	now := time.Now()
	report.Status = input.Status
	report.Resolution = input.Resolution
	report.ActionTaken = action
	report.ResolvedBy = adminID
	report.ResolvedAt = &now
	report.UpdatedAt = now

	if err := uc.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, report.ReporterID, NotificationPayload{
		Type:    entity.NotificationReportResolved,
		Title:   "Your report was reviewed",
		Message: "A moderator has reviewed your report",
		Data:    map[string]interface{}{"report_id": report.ID, "status": report.Status},
	}, DefaultChannels())

	return report, nil
}

func (uc *ReportUseCase) assertTargetExists(ctx context.Context, target entity.ReportTarget) error {
	var err error
	switch target.Type {
	case entity.ReportTargetVehicle:
		_, err = uc.vehicleRepo.GetByID(ctx, target.ID)
	case entity.ReportTargetPart:
		_, err = uc.partRepo.GetByID(ctx, target.ID)
	case entity.ReportTargetUser:
		_, err = uc.userRepo.GetByID(ctx, target.ID)
	case entity.ReportTargetSwap:
		_, err = uc.swapRepo.GetByID(ctx, target.ID)
	case entity.ReportTargetReview:
		_, err = uc.reviewRepo.GetByID(ctx, target.ID)
	}
	return err
}

func (uc *ReportUseCase) applyRemediation(ctx context.Context, target entity.ReportTarget, action string) error {
	switch action {
	case entity.ReportActionNone:
		return nil
	case entity.ReportActionRemove:
		return uc.removeTarget(ctx, target)
	case entity.ReportActionSuspend, entity.ReportActionBan:
		return uc.sanctionUser(ctx, target, action)
	default:
		return errors.BadRequest("Invalid remediation action", nil)
	}
}

func (uc *ReportUseCase) removeTarget(ctx context.Context, target entity.ReportTarget) error {
	switch target.Type {
	case entity.ReportTargetVehicle:
		return uc.vehicleRepo.UpdateStatus(ctx, target.ID, entity.ListingStatusInactive)
	case entity.ReportTargetPart:
		return uc.partRepo.UpdateStatus(ctx, target.ID, entity.ListingStatusInactive)
	case entity.ReportTargetReview:
		review, err := uc.reviewRepo.GetByID(ctx, target.ID)
		if err != nil {
			return err
		}
		review.Status = "removed"
		review.UpdatedAt = time.Now()
		return uc.reviewRepo.Update(ctx, review)
	default:
		return errors.BadRequest("This target cannot be removed", nil)
	}
}

// sanctionUser resolves the user behind the target (the user itself or the
// listing's owner) and flips their account status.
func (uc *ReportUseCase) sanctionUser(ctx context.Context, target entity.ReportTarget, action string) error {
	userID, err := uc.resolveTargetUser(ctx, target)
	if err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	newStatus := "suspended"
	if action == entity.ReportActionBan {
		newStatus = "banned"
	}

	user.Status = newStatus
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	uc.notifier.Notify(ctx, user.ID, NotificationPayload{
		Type:    entity.NotificationSecurityAlert,
		Title:   "Account status changed",
		Message: "Your account has been " + newStatus + " following a moderation review",
	}, NotificationChannels{InApp: true, Email: true, SMS: true})

	logger.Warn("User %s %s by moderation action", user.ID, newStatus)
	return nil
}

func (uc *ReportUseCase) resolveTargetUser(ctx context.Context, target entity.ReportTarget) (string, error) {
	switch target.Type {
	case entity.ReportTargetUser:
		return target.ID, nil
	case entity.ReportTargetVehicle:
		vehicle, err := uc.vehicleRepo.GetByID(ctx, target.ID)
		if err != nil {
			return "", err
		}
		return vehicle.SellerID, nil
	case entity.ReportTargetPart:
		part, err := uc.partRepo.GetByID(ctx, target.ID)
		if err != nil {
			return "", err
		}
		return part.SellerID, nil
	case entity.ReportTargetReview:
		review, err := uc.reviewRepo.GetByID(ctx, target.ID)
		if err != nil {
			return "", err
		}
		return review.ReviewerID, nil
	default:
		return "", errors.BadRequest("This target cannot be sanctioned", nil)
	}
}
