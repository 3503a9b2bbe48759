package models

// OrderEvent is published on the order-events channel after a placement.
type OrderEvent struct {
	OrderID string      `json:"orderId"`
	UserID  string      `json:"userId"`
	Items   []OrderItem `json:"items"`
	Total   float64     `json:"total"`
}
