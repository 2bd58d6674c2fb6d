package entity

import (
	"time"
)

type Review struct {
	ID         string `json:"id" firestore:"id"`
	SwapID     string `json:"swap_id" firestore:"swapId"`
	ReviewerID string `json:"reviewer_id" firestore:"reviewerId"`
	TargetID   string `json:"target_id" firestore:"targetId"`

	Rating  int    `json:"rating" firestore:"rating"`
	Content string `json:"content,omitempty" firestore:"content,omitempty"`
	Status  string `json:"status" firestore:"status"` // active, removed

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
