package entity

import (
	"time"
)

const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCancelled = "cancelled"
	SwapStatusCompleted = "completed"
)

const (
	SwapItemTypeVehicle = "vehicle"
	SwapItemTypePart    = "part"
)

type Swap struct {
	ID          string `json:"id" firestore:"id"`
	InitiatorID string `json:"initiator_id" firestore:"initiatorId"`
	ReceiverID  string `json:"receiver_id" firestore:"receiverId"`

	OfferedVehicleID  string `json:"offered_vehicle_id" firestore:"offeredVehicleId"`
	RequestedItemType string `json:"requested_item_type" firestore:"requestedItemType"` // vehicle, part
	RequestedItemID   string `json:"requested_item_id" firestore:"requestedItemId"`

	AdditionalCash float64 `json:"additional_cash,omitempty" firestore:"additionalCash,omitempty"`
	Currency       string  `json:"currency,omitempty" firestore:"currency,omitempty"`

	Status       string `json:"status" firestore:"status"`
	Message      string `json:"message,omitempty" firestore:"message,omitempty"`
	ResponseNote string `json:"response_note,omitempty" firestore:"responseNote,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	RespondedAt *time.Time `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

// IsTerminal reports whether no further transition is allowed.
func (s *Swap) IsTerminal() bool {
	return s.Status == SwapStatusRejected ||
		s.Status == SwapStatusCancelled ||
		s.Status == SwapStatusCompleted
}

// IsParty reports whether userID is the initiator or the receiver.
func (s *Swap) IsParty(userID string) bool {
	return s.InitiatorID == userID || s.ReceiverID == userID
}

// OtherParty returns the counterparty of userID.
func (s *Swap) OtherParty(userID string) string {
	if s.InitiatorID == userID {
		return s.ReceiverID
	}
	return s.InitiatorID
}
