package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/internal/domain/service"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/utils"
)

type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	vehicleRepo repository.VehicleRepository
	partRepo    repository.PartRepository
	gateway     service.PaymentGatewayService
	notifier    Notifier
	callbackURL string
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	partRepo repository.PartRepository,
	gateway service.PaymentGatewayService,
	notifier Notifier,
	callbackURL string,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		partRepo:    partRepo,
		gateway:     gateway,
		notifier:    notifier,
		callbackURL: callbackURL,
	}
}

type InitializePaymentInput struct {
	Amount        float64
	Currency      string
	PaymentMethod string
	Description   string
	Metadata      map[string]interface{}
}

type InitializePaymentResult struct {
	PaymentID   string  `json:"payment_id"`
	Reference   string  `json:"reference"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CheckoutURL string  `json:"checkout_url"`
}

var referencePrefixes = map[string]string{
	entity.PaymentTypeSubscription:   "SUB",
	entity.PaymentTypeFeatureListing: "FEAT",
	entity.PaymentTypeBoostAd:        "BOOST",
	entity.PaymentTypeEscrow:         "ESC",
}

func (uc *PaymentUseCase) Initialize(ctx context.Context, userID string, input InitializePaymentInput) (*InitializePaymentResult, error) {
	if input.Amount <= 0 {
		return nil, errors.BadRequest("Amount must be greater than zero", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	paymentType := ""
	if input.Metadata != nil {
		paymentType, _ = input.Metadata["type"].(string)
	}

	reference := generateReference(paymentType)

	initResp, err := uc.gateway.Initialize(ctx, service.GatewayInitRequest{
		Reference:   reference,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Email:       user.Email,
		CallbackURL: uc.callbackURL,
		Metadata:    input.Metadata,
	})
	if err != nil {
		return nil, errors.Internal("Failed to initialize payment", err)
	}

	payment := &entity.Payment{
		Reference:     reference,
		UserID:        userID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		PaymentMethod: input.PaymentMethod,
		Status:        entity.PaymentStatusPending,
		Description:   input.Description,
		Metadata:      input.Metadata,
		CheckoutURL:   initResp.CheckoutURL,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment %s initialized for user %s, reference %s", payment.ID, userID, reference)

	return &InitializePaymentResult{
		PaymentID:   payment.ID,
		Reference:   reference,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		CheckoutURL: payment.CheckoutURL,
	}, nil
}

// Verify reconciles a payment against the gateway. Calling it on an already
// completed payment is a no-op returning the current state, so clients can
// poll it freely after checkout.
func (uc *PaymentUseCase) Verify(ctx context.Context, userID, reference string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if payment.UserID != userID {
		return nil, errors.NotFound("Payment not found", nil)
	}

	if payment.Status != entity.PaymentStatusPending {
		return payment, nil
	}

	verifyResp, err := uc.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, errors.Internal("Failed to verify payment with gateway", err)
	}

	switch verifyResp.Status {
	case "success":
		return uc.completePayment(ctx, payment, verifyResp.TransactionID, "")
	case "failed":
		return uc.failPayment(ctx, payment, "")
	default:
		return payment, nil
	}
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        json.Number `json:"id"`
		Reference string      `json:"reference"`
		Status    string      `json:"status"`
	} `json:"data"`
}

// HandleWebhook applies a gateway event after checking its signature. Errors
// past signature verification are logged and swallowed so the gateway does
// not retry forever over a malformed or already-applied event; the transport
// handler returns 200 regardless.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	if err := uc.gateway.VerifyWebhookSignature(signature, body); err != nil {
		return errors.Unauthorized("Invalid webhook signature", err)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Error("Failed to decode webhook payload: %v", err)
		return nil
	}

	if event.Data.Reference == "" {
		logger.Warn("Webhook event %s carried no reference, ignoring", event.Event)
		return nil
	}

	payment, err := uc.paymentRepo.GetByReference(ctx, event.Data.Reference)
	if err != nil {
		logger.Warn("Webhook for unknown reference %s: %v", event.Data.Reference, err)
		return nil
	}

	eventID := event.Data.ID.String()
	if eventID != "" && payment.HasProcessedEvent(eventID) {
		logger.Info("Webhook event %s for payment %s already processed, ignoring", eventID, payment.ID)
		return nil
	}

	switch event.Event {
	case "charge.success":
		if _, err := uc.completePayment(ctx, payment, eventID, eventID); err != nil {
			logger.Error("Failed to complete payment %s from webhook: %v", payment.ID, err)
		}
	case "charge.failed":
		if _, err := uc.failPayment(ctx, payment, eventID); err != nil {
			logger.Error("Failed to mark payment %s failed from webhook: %v", payment.ID, err)
		}
	case "refund.processed":
		if _, err := uc.refundPayment(ctx, payment, "Refund processed by gateway", eventID); err != nil {
			logger.Error("Failed to mark payment %s refunded from webhook: %v", payment.ID, err)
		}
	default:
		logger.Debug("Ignoring webhook event %s for payment %s", event.Event, payment.ID)
	}

	return nil
}

func (uc *PaymentUseCase) Cancel(ctx context.Context, userID, paymentID string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.UserID != userID {
		return nil, errors.Forbidden("You don't have permission to cancel this payment", nil)
	}

	if payment.Status != entity.PaymentStatusPending {
		return nil, errors.BadRequest("Only pending payments can be cancelled", nil)
	}

	now := time.Now()
	return uc.paymentRepo.UpdateStatus(ctx, payment.ID, entity.PaymentStatusPending, func(p *entity.Payment) {
		p.Status = entity.PaymentStatusCancelled
		p.CancelledAt = &now
	})
}

func (uc *PaymentUseCase) Refund(ctx context.Context, actorID, paymentID, reason string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.UserID != actorID {
		actor, err := uc.userRepo.GetByID(ctx, actorID)
		if err != nil || actor.Role != "admin" {
			return nil, errors.Forbidden("You don't have permission to refund this payment", nil)
		}
	}

	if payment.Status != entity.PaymentStatusCompleted {
		return nil, errors.BadRequest("Only completed payments can be refunded", nil)
	}

	return uc.refundPayment(ctx, payment, reason, "")
}

func (uc *PaymentUseCase) GetPaymentByID(ctx context.Context, userID, paymentID string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.UserID != userID {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil || user.Role != "admin" {
			return nil, errors.NotFound("Payment not found", nil)
		}
	}

	return payment, nil
}

func (uc *PaymentUseCase) ListPayments(ctx context.Context, userID, status string, page, limit int) ([]*entity.Payment, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.paymentRepo.ListByUserID(ctx, userID, status, pagination.PageSize, pagination.Offset)
}

func (uc *PaymentUseCase) completePayment(ctx context.Context, payment *entity.Payment, transactionID, eventID string) (*entity.Payment, error) {
	now := time.Now()
	updated, err := uc.paymentRepo.UpdateStatus(ctx, payment.ID, entity.PaymentStatusPending, func(p *entity.Payment) {
		p.Status = entity.PaymentStatusCompleted
		p.PaidAt = &now
		if transactionID != "" {
			p.GatewayTransactionID = transactionID
		}
		if eventID != "" {
			p.ProcessedEventIDs = append(p.ProcessedEventIDs, eventID)
		}
	})
	if err != nil {
		return nil, err
	}

	uc.dispatchPostSuccess(ctx, updated)

	uc.notifier.Notify(ctx, updated.UserID, NotificationPayload{
		Type:    entity.NotificationPaymentSuccess,
		Title:   "Payment successful",
		Message: fmt.Sprintf("Your payment of %.2f %s was successful", updated.Amount, updated.Currency),
		Data:    map[string]interface{}{"payment_id": updated.ID, "reference": updated.Reference},
	}, NotificationChannels{InApp: true, Email: true, SMS: true})

	return updated, nil
}

func (uc *PaymentUseCase) failPayment(ctx context.Context, payment *entity.Payment, eventID string) (*entity.Payment, error) {
	now := time.Now()
	updated, err := uc.paymentRepo.UpdateStatus(ctx, payment.ID, entity.PaymentStatusPending, func(p *entity.Payment) {
		p.Status = entity.PaymentStatusFailed
		p.FailedAt = &now
		if eventID != "" {
			p.ProcessedEventIDs = append(p.ProcessedEventIDs, eventID)
		}
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, updated.UserID, NotificationPayload{
		Type:    entity.NotificationPaymentFailed,
		Title:   "Payment failed",
		Message: fmt.Sprintf("Your payment of %.2f %s could not be processed", updated.Amount, updated.Currency),
		Data:    map[string]interface{}{"payment_id": updated.ID, "reference": updated.Reference},
	}, NotificationChannels{InApp: true, Email: true})

	return updated, nil
}

func (uc *PaymentUseCase) refundPayment(ctx context.Context, payment *entity.Payment, reason, eventID string) (*entity.Payment, error) {
	now := time.Now()
	updated, err := uc.paymentRepo.UpdateStatus(ctx, payment.ID, entity.PaymentStatusCompleted, func(p *entity.Payment) {
		p.Status = entity.PaymentStatusRefunded
		p.RefundedAt = &now
		p.RefundReason = reason
		if eventID != "" {
			p.ProcessedEventIDs = append(p.ProcessedEventIDs, eventID)
		}
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, updated.UserID, NotificationPayload{
		Type:    entity.NotificationPaymentRefund,
		Title:   "Payment refunded",
		Message: fmt.Sprintf("Your payment of %.2f %s was refunded", updated.Amount, updated.Currency),
		Data:    map[string]interface{}{"payment_id": updated.ID, "reference": updated.Reference},
	}, NotificationChannels{InApp: true, Email: true})

	return updated, nil
}

// dispatchPostSuccess applies the purchased effect after a payment completes.
// Effects are best-effort, a failed effect never un-completes the payment.
func (uc *PaymentUseCase) dispatchPostSuccess(ctx context.Context, payment *entity.Payment) {
	switch payment.Type() {
	case entity.PaymentTypeSubscription:
		uc.activateSubscription(ctx, payment)
	case entity.PaymentTypeFeatureListing:
		uc.promoteListing(ctx, payment, false)
	case entity.PaymentTypeBoostAd:
		uc.promoteListing(ctx, payment, true)
	case entity.PaymentTypeEscrow:
		// Escrow funds are released manually, nothing automatic here.
	default:
		logger.Debug("Payment %s has no post-success effect (type %q)", payment.ID, payment.Type())
	}
}

func (uc *PaymentUseCase) activateSubscription(ctx context.Context, payment *entity.Payment) {
	user, err := uc.userRepo.GetByID(ctx, payment.UserID)
	if err != nil {
		logger.Error("Failed to load user %s for subscription activation: %v", payment.UserID, err)
		return
	}

	plan, _ := payment.Metadata["plan"].(string)
	if plan == "" {
		plan = "premium"
	}

	start := time.Now()
	end := start.AddDate(0, 0, 365)
	if plan == "premium" {
		end = start.AddDate(0, 0, 30)
	}

	user.SubscriptionPlan = plan
	user.SubscriptionActive = true
	user.SubscriptionStartDate = &start
	user.SubscriptionEndDate = &end

	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Error("Failed to activate subscription for user %s: %v", user.ID, err)
		return
	}

	logger.Info("Subscription %s activated for user %s until %s", plan, user.ID, end.Format(time.RFC3339))
}

func (uc *PaymentUseCase) promoteListing(ctx context.Context, payment *entity.Payment, boost bool) {
	listingType, _ := payment.Metadata["listing_type"].(string)
	listingID, _ := payment.Metadata["listing_id"].(string)
	if listingID == "" {
		logger.Warn("Payment %s has no listing_id metadata, skipping promotion", payment.ID)
		return
	}

	days := 7
	if d, ok := payment.Metadata["days"].(float64); ok && d > 0 {
		days = int(d)
	}
	until := time.Now().AddDate(0, 0, days)

	switch listingType {
	case entity.SwapItemTypePart:
		part, err := uc.partRepo.GetByID(ctx, listingID)
		if err != nil {
			logger.Error("Failed to load part %s for promotion: %v", listingID, err)
			return
		}
		if boost {
			part.Boosted = true
			part.BoostedUntil = &until
		} else {
			part.Featured = true
			part.FeaturedUntil = &until
		}
		if err := uc.partRepo.Update(ctx, part); err != nil {
			logger.Error("Failed to promote part %s: %v", listingID, err)
		}
	default:
		vehicle, err := uc.vehicleRepo.GetByID(ctx, listingID)
		if err != nil {
			logger.Error("Failed to load vehicle %s for promotion: %v", listingID, err)
			return
		}
		if boost {
			vehicle.Boosted = true
			vehicle.BoostedUntil = &until
		} else {
			vehicle.Featured = true
			vehicle.FeaturedUntil = &until
		}
		if err := uc.vehicleRepo.Update(ctx, vehicle); err != nil {
			logger.Error("Failed to promote vehicle %s: %v", listingID, err)
		}
	}
}

func generateReference(paymentType string) string {
	prefix, ok := referencePrefixes[paymentType]
	if !ok {
		prefix = "PAY"
	}

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to the timestamp alone, still unique enough per user.
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Unix(), hex.EncodeToString(buf))
}
