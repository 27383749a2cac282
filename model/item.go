package model

import "time"

type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	SellerID    string    `json:"seller_id"`
	SellerName  string    `json:"seller"` // resolved by join, empty if the seller account is gone
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
