package models

import "time"

// Order statuses. Orders are created as "confirmed"; only status moves afterward.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem captures quantity and unit price at order time; the price is
// decoupled from the live catalog price from this point on.
type OrderItem struct {
	ProductID string  `json:"product" bson:"product"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Shipping details; all fields are required at placement.
type Shipping struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Address   string `json:"address" bson:"address"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	ZipCode   string `json:"zipCode" bson:"zipCode"`
}

// Order is immutable once created, apart from status.
type Order struct {
	OrderID       string      `json:"orderId" bson:"orderId"`
	UserID        string      `json:"userId" bson:"userId"`
	Items         []OrderItem `json:"items" bson:"items"`
	Shipping      Shipping    `json:"shipping" bson:"shipping"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`
	Total         float64     `json:"total" bson:"total"`
	Status        string      `json:"status" bson:"status"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
}

// ExpandedOrderItem embeds the full product record for responses.
type ExpandedOrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type ExpandedOrder struct {
	OrderID       string              `json:"orderId"`
	UserID        string              `json:"userId"`
	Items         []ExpandedOrderItem `json:"items"`
	Shipping      Shipping            `json:"shipping"`
	PaymentMethod string              `json:"paymentMethod"`
	Total         float64             `json:"total"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
}
