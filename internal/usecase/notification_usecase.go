package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gearswap/internal/domain/entity"
	"gearswap/internal/domain/repository"
	"gearswap/internal/infrastructure/mailer"
	"gearswap/internal/infrastructure/sms"
	"gearswap/internal/infrastructure/websocket"
	"gearswap/pkg/errors"
	"gearswap/pkg/logger"
	"gearswap/pkg/utils"
)

// NotificationPayload is the structured message delivered across channels.
type NotificationPayload struct {
	Type      string
	Title     string
	Message   string
	Data      map[string]interface{}
	ActionURL string
}

// NotificationChannels selects delivery channels for a single dispatch.
type NotificationChannels struct {
	InApp bool
	Email bool
	SMS   bool
}

func DefaultChannels() NotificationChannels {
	return NotificationChannels{InApp: true}
}

// Notifier is the sink the lifecycle managers publish through. Channel
// failures are logged by the implementation and never surface to callers.
type Notifier interface {
	Notify(ctx context.Context, userID string, payload NotificationPayload, channels NotificationChannels)
}

// Types important enough to page the user over SMS.
var smsAllowList = map[string]bool{
	entity.NotificationSwapAccepted:    true,
	entity.NotificationPaymentSuccess:  true,
	entity.NotificationListingApproved: true,
	entity.NotificationSecurityAlert:   true,
}

var emailSubjects = map[string]string{
	entity.NotificationSwapProposal:    "You have a new swap proposal",
	entity.NotificationSwapAccepted:    "Your swap proposal was accepted",
	entity.NotificationSwapCompleted:   "Your swap is complete",
	entity.NotificationPaymentSuccess:  "Payment received",
	entity.NotificationPaymentRefund:   "Your payment was refunded",
	entity.NotificationListingApproved: "Your listing is live",
	entity.NotificationSecurityAlert:   "Security alert on your account",
}

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	wsManager        *websocket.Manager
	emailSender      mailer.EmailSender
	smsSender        sms.SMSSender
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	wsManager *websocket.Manager,
	emailSender mailer.EmailSender,
	smsSender sms.SMSSender,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		wsManager:        wsManager,
		emailSender:      emailSender,
		smsSender:        smsSender,
	}
}

// Notify records an in-app notification and fans out to the real-time,
// email and SMS channels best-effort. It never returns an error: a failed
// channel must not fail or roll back the domain operation that triggered it.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID string, payload NotificationPayload, channels NotificationChannels) {
	notification := &entity.Notification{
		UserID:    userID,
		Type:      payload.Type,
		Title:     payload.Title,
		Message:   payload.Message,
		Data:      payload.Data,
		ActionURL: payload.ActionURL,
		CreatedAt: time.Now(),
	}

	if channels.InApp {
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			logger.Error("Failed to persist notification for user %s: %v", userID, err)
		}
	}

	uc.publishRealtime(userID, notification)

	if channels.Email || channels.SMS {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			logger.Warn("Skipping external channels for user %s: %v", userID, err)
			return
		}

		if channels.Email {
			uc.sendEmail(ctx, user, payload)
		}

		if channels.SMS && smsAllowList[payload.Type] {
			uc.sendSMS(ctx, user, payload)
		}
	}
}

func (uc *NotificationUseCase) publishRealtime(userID string, notification *entity.Notification) {
	if uc.wsManager == nil {
		return
	}

	message, err := json.Marshal(map[string]interface{}{
		"type":         "notification",
		"notification": notification,
	})
	if err != nil {
		logger.Error("Failed to encode realtime notification: %v", err)
		return
	}

	uc.wsManager.SendToUser(userID, message)
}

func (uc *NotificationUseCase) sendEmail(ctx context.Context, user *entity.User, payload NotificationPayload) {
	if uc.emailSender == nil || user.Email == "" {
		return
	}

	subject, ok := emailSubjects[payload.Type]
	if !ok {
		// No template for this type, in-app only.
		return
	}

	body := payload.Message
	if payload.ActionURL != "" {
		body = fmt.Sprintf("%s\n\n%s", payload.Message, payload.ActionURL)
	}

	if err := uc.emailSender.Send(ctx, user.Email, subject, body); err != nil {
		logger.Error("Failed to send email to %s: %v", user.Email, err)
	}
}

func (uc *NotificationUseCase) sendSMS(ctx context.Context, user *entity.User, payload NotificationPayload) {
	if uc.smsSender == nil || user.Phone == "" {
		return
	}

	if err := uc.smsSender.Send(ctx, user.Phone, payload.Message); err != nil {
		logger.Error("Failed to send SMS to %s: %v", user.Phone, err)
	}
}

func (uc *NotificationUseCase) ListNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*entity.Notification, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.notificationRepo.ListByUserID(ctx, userID, unreadOnly, pagination.PageSize, pagination.Offset)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return errors.Forbidden("You don't have permission to modify this notification", nil)
	}

	return uc.notificationRepo.MarkRead(ctx, notificationID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return errors.Forbidden("You don't have permission to delete this notification", nil)
	}

	return uc.notificationRepo.Delete(ctx, notificationID)
}

func (uc *NotificationUseCase) ClearNotifications(ctx context.Context, userID string) error {
	return uc.notificationRepo.DeleteAllByUserID(ctx, userID)
}
