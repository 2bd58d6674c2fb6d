package entity

import (
	"time"
)

type Favorite struct {
	ID       string `json:"id" firestore:"id"`
	UserID   string `json:"user_id" firestore:"userId"`
	ItemType string `json:"item_type" firestore:"itemType"` // vehicle, part
	ItemID   string `json:"item_id" firestore:"itemId"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
