package entity

import (
	"time"
)

// Notification types emitted by the lifecycle managers.
const (
	NotificationSwapProposal    = "swap_proposal"
	NotificationSwapAccepted    = "swap_accepted"
	NotificationSwapRejected    = "swap_rejected"
	NotificationSwapCancelled   = "swap_cancelled"
	NotificationSwapCompleted   = "swap_completed"
	NotificationPaymentSuccess  = "payment_success"
	NotificationPaymentFailed   = "payment_failed"
	NotificationPaymentRefund   = "payment_refunded"
	NotificationListingApproved = "listing_approved"
	NotificationReportResolved  = "report_resolved"
	NotificationSecurityAlert   = "security_alert"
	NotificationNewMessage      = "new_message"
)

type Notification struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"user_id" firestore:"userId"`

	Type      string                 `json:"type" firestore:"type"`
	Title     string                 `json:"title" firestore:"title"`
	Message   string                 `json:"message" firestore:"message"`
	Data      map[string]interface{} `json:"data,omitempty" firestore:"data,omitempty"`
	ActionURL string                 `json:"action_url,omitempty" firestore:"actionUrl,omitempty"`

	IsRead bool       `json:"is_read" firestore:"isRead"`
	ReadAt *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
