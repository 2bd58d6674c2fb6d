package entity

import (
	"time"
)

// Listing statuses shared by vehicles and parts.
const (
	ListingStatusActive   = "active"
	ListingStatusPending  = "pending"
	ListingStatusSold     = "sold"
	ListingStatusSwapped  = "swapped"
	ListingStatusInactive = "inactive"
	ListingStatusExpired  = "expired"
)

type ListingImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Vehicle struct {
	ID          string  `json:"id" firestore:"id"`
	SellerID    string  `json:"seller_id" firestore:"sellerId"`
	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Make        string  `json:"make" firestore:"make"`
	Model       string  `json:"model" firestore:"model"`
	Year        int     `json:"year" firestore:"year"`
	Mileage     int     `json:"mileage" firestore:"mileage"`
	Price       float64 `json:"price" firestore:"price"`
	Currency    string  `json:"currency" firestore:"currency"`
	Status      string  `json:"status" firestore:"status"`
	OpenToSwap  bool    `json:"open_to_swap" firestore:"openToSwap"`

	Images []ListingImage `json:"images" firestore:"images"`
	Views  int            `json:"views" firestore:"views"`

	Featured      bool       `json:"featured" firestore:"featured"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty" firestore:"featuredUntil,omitempty"`
	Boosted       bool       `json:"boosted" firestore:"boosted"`
	BoostedUntil  *time.Time `json:"boosted_until,omitempty" firestore:"boostedUntil,omitempty"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

type Part struct {
	ID              string   `json:"id" firestore:"id"`
	SellerID        string   `json:"seller_id" firestore:"sellerId"`
	Title           string   `json:"title" firestore:"title"`
	Description     string   `json:"description" firestore:"description"`
	Category        string   `json:"category" firestore:"category"`
	Condition       string   `json:"condition" firestore:"condition"` // new, used, refurbished
	CompatibleMakes []string `json:"compatible_makes,omitempty" firestore:"compatibleMakes,omitempty"`
	Price           float64  `json:"price" firestore:"price"`
	Currency        string   `json:"currency" firestore:"currency"`
	Status          string   `json:"status" firestore:"status"`
	OpenToSwap      bool     `json:"open_to_swap" firestore:"openToSwap"`

	Images []ListingImage `json:"images" firestore:"images"`
	Views  int            `json:"views" firestore:"views"`

	Featured      bool       `json:"featured" firestore:"featured"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty" firestore:"featuredUntil,omitempty"`
	Boosted       bool       `json:"boosted" firestore:"boosted"`
	BoostedUntil  *time.Time `json:"boosted_until,omitempty" firestore:"boostedUntil,omitempty"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
