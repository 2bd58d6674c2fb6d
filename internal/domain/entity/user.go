package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone" firestore:"phone"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Role     string `json:"role" firestore:"role"`     // user, admin
	Status   string `json:"status" firestore:"status"` // active, suspended, banned

	FullName string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Address  string `json:"address,omitempty" firestore:"address,omitempty"`

	SellerRating      float64 `json:"seller_rating,omitempty" firestore:"sellerRating,omitempty"`
	SellerReviewCount int     `json:"seller_review_count,omitempty" firestore:"sellerReviewCount,omitempty"`
	TotalSwaps        int     `json:"total_swaps" firestore:"totalSwaps"`

	SubscriptionPlan      string     `json:"subscription_plan,omitempty" firestore:"subscriptionPlan,omitempty"`
	SubscriptionActive    bool       `json:"subscription_active" firestore:"subscriptionActive"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty" firestore:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty" firestore:"subscriptionEndDate,omitempty"`

	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	LastSeen  time.Time `json:"last_seen" firestore:"lastSeen"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// UserSummary is the party view attached to swaps and chats.
type UserSummary struct {
	ID        string `json:"id" firestore:"id"`
	Username  string `json:"username" firestore:"username"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
