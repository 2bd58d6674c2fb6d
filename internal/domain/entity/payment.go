package entity

import (
	"time"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusCancelled = "cancelled"
)

// Payment purposes carried in the metadata "type" discriminator.
const (
	PaymentTypeSubscription   = "subscription"
	PaymentTypeFeatureListing = "feature_listing"
	PaymentTypeBoostAd        = "boost_ad"
	PaymentTypeEscrow         = "escrow"
)

type Payment struct {
	ID        string `json:"id" firestore:"id"`
	Reference string `json:"reference" firestore:"reference"`
	UserID    string `json:"user_id" firestore:"userId"`

	Amount        float64 `json:"amount" firestore:"amount"`
	Currency      string  `json:"currency" firestore:"currency"`
	PaymentMethod string  `json:"payment_method" firestore:"paymentMethod"`
	Status        string  `json:"status" firestore:"status"`
	Description   string  `json:"description,omitempty" firestore:"description,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty" firestore:"metadata,omitempty"`

	CheckoutURL          string `json:"checkout_url,omitempty" firestore:"checkoutUrl,omitempty"`
	GatewayTransactionID string `json:"gateway_transaction_id,omitempty" firestore:"gatewayTransactionId,omitempty"`

	// Gateway event ids already applied, so replayed webhook deliveries
	// do not re-run the post-success dispatcher.
	ProcessedEventIDs []string `json:"-" firestore:"processedEventIds,omitempty"`

	RefundReason string `json:"refund_reason,omitempty" firestore:"refundReason,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	PaidAt      *time.Time `json:"paid_at,omitempty" firestore:"paidAt,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty" firestore:"failedAt,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty" firestore:"refundedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
}

// Type returns the payment purpose from metadata, empty when absent.
func (p *Payment) Type() string {
	if p.Metadata == nil {
		return ""
	}
	t, _ := p.Metadata["type"].(string)
	return t
}

// HasProcessedEvent reports whether a gateway event id was already applied.
func (p *Payment) HasProcessedEvent(eventID string) bool {
	for _, id := range p.ProcessedEventIDs {
		if id == eventID {
			return true
		}
	}
	return false
}
