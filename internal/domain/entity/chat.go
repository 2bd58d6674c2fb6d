package entity

import (
	"time"
)

type Chat struct {
	ID           string    `json:"id" firestore:"id"`
	Participants []string  `json:"participants" firestore:"participants"`
	ListingType  string    `json:"listing_type,omitempty" firestore:"listingType,omitempty"`
	ListingID    string    `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	LastMessage  string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastSentAt   time.Time `json:"last_sent_at" firestore:"lastSentAt"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Message struct {
	ID       string `json:"id" firestore:"id"`
	ChatID   string `json:"chat_id" firestore:"chatId"`
	SenderID string `json:"sender_id" firestore:"senderId"`
	Content  string `json:"content" firestore:"content"`
	Type     string `json:"type" firestore:"type"` // text, system

	IsRead bool       `json:"is_read" firestore:"isRead"`
	ReadAt *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
