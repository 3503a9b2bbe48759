package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dukaan/db"
	"dukaan/globals"
	"dukaan/models"
	"dukaan/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const orderEventsChannel = "order-events"

// Threshold below which the worker flags a product as running low.
const lowStockThreshold = 5

// EmitOrderPlaced publishes an order-placed event to Redis. Publishing is
// best-effort: a failed publish never fails the placement itself.
func EmitOrderPlaced(ctx context.Context, event models.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] Failed to marshal order event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, orderEventsChannel, data).Err(); err != nil {
		log.Printf("[mq] Failed to publish order event: %v", err)
	}
}

// StartOrderWorker subscribes to order events, logs placements, and flags
// products whose stock has dropped below the threshold.
func StartOrderWorker() {
	ctx := globals.Ctx
	sub := rdx.Conn.Subscribe(ctx, orderEventsChannel)
	ch := sub.Channel()

	log.Println("[OrderWorker] Listening for order events...")

	for msg := range ch {
		var event models.OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[OrderWorker] Failed to parse event: %v", err)
			continue
		}

		log.Printf("[OrderWorker] Order %s placed by %s, total %.2f", event.OrderID, event.UserID, event.Total)
		checkLowStock(ctx, event.Items)
	}
}

func checkLowStock(ctx context.Context, items []models.OrderItem) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, item := range items {
		var product models.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productId": item.ProductID}).Decode(&product); err != nil {
			continue
		}
		if product.Stock < lowStockThreshold {
			log.Printf("[OrderWorker] Low stock: %s (%s) has %d left", product.Name, product.ProductID, product.Stock)
		}
	}
}
