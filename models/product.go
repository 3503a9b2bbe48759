package models

import "time"

// Product is a purchasable catalog entry. Stock is the authoritative count
// of sellable units and is only ever mutated through order placement.
type Product struct {
	ProductID   string    `json:"productId" bson:"productId"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Brand       string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Stock       int       `json:"stock" bson:"stock"`
	CategoryID  string    `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Category struct {
	CategoryID  string    `json:"categoryId" bson:"categoryId"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Slug        string    `json:"slug" bson:"slug"`
	ParentID    string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
