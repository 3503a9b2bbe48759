package models

import "time"

// CartItem is a single purchase intent within a cart.
type CartItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart holds at most one document per user identity. Items never contain two
// entries for the same product; re-adding merges quantities instead.
type Cart struct {
	UserID    string     `json:"userId" bson:"userId"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// ExpandedCartItem is a cart line item with the live product embedded for
// display (price, name, image).
type ExpandedCartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type ExpandedCart struct {
	UserID    string             `json:"userId"`
	Items     []ExpandedCartItem `json:"items"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
