package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"dukaan/db"
	"dukaan/models"
	"dukaan/mq"
	"dukaan/rdx"
	"dukaan/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store access is indirected through these so tests can swap in fakes.
var (
	findProduct       = findProductMongo
	insertOrder       = insertOrderMongo
	decrementStock    = decrementStockMongo
	findOrder         = findOrderMongo
	findUserOrders    = findUserOrdersMongo
	invalidateProduct = rdx.InvalidateProduct
	emitOrderPlaced   = mq.EmitOrderPlaced
)

// PlaceOrder runs the placement workflow: validate the payload, resolve and
// stock-check every line item up front, persist the order, then decrement
// stock per item. The pre-checks are all-or-nothing; the decrements are
// independent writes with no rollback, and the check and decrement are not
// one atomic step. The caller clears its cart with a separate request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("PlaceOrder decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if msg := validatePlaceOrder(req); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	resolved, msg, err := resolveItems(ctx, req.Items)
	if err != nil {
		log.Println("PlaceOrder product lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
		return
	}
	if msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	order := models.Order{
		OrderID:       uuid.NewString(),
		UserID:        userID,
		Items:         req.Items,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
		Total:         req.Total, // echoed as declared by the client, not recomputed
		Status:        models.OrderStatusConfirmed,
		CreatedAt:     time.Now(),
	}

	if err := insertOrder(ctx, order); err != nil {
		log.Println("PlaceOrder insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	// Decrement stock per line item. A failure partway through leaves the
	// order persisted and earlier decrements applied.
	for _, item := range req.Items {
		if err := decrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Println("PlaceOrder stock decrement error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
			return
		}
		product := resolved[item.ProductID]
		product.Stock -= item.Quantity
		resolved[item.ProductID] = product
		invalidateProduct(ctx, item.ProductID)
	}

	emitOrderPlaced(ctx, models.OrderEvent{
		OrderID: order.OrderID,
		UserID:  order.UserID,
		Items:   order.Items,
		Total:   order.Total,
	})

	utils.RespondWithData(w, http.StatusCreated, "Order placed successfully", expandOrder(order, resolved))
}

// resolveItems looks up every line item and verifies stock before any write.
// The first failure aborts the whole placement; nothing has been persisted or
// decremented at that point. Returns the resolved products keyed by id, or a
// client-facing message for a bad item.
func resolveItems(ctx context.Context, items []models.OrderItem) (map[string]models.Product, string, error) {
	resolved := make(map[string]models.Product, len(items))
	for _, item := range items {
		product, err := findProduct(ctx, item.ProductID)
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Sprintf("Product %s not found", item.ProductID), nil
		}
		if err != nil {
			return nil, "", err
		}

		if product.Stock < item.Quantity {
			return nil, fmt.Sprintf("Insufficient stock for %s", product.Name), nil
		}
		resolved[item.ProductID] = product
	}
	return resolved, "", nil
}

// GetUserOrders returns the caller's orders, newest first, items expanded.
func GetUserOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userOrders, err := findUserOrders(ctx, userID)
	if err != nil {
		log.Println("GetUserOrders find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}

	expanded := make([]models.ExpandedOrder, 0, len(userOrders))
	for _, o := range userOrders {
		exp, err := expandOrderFromStore(ctx, o)
		if err != nil {
			log.Println("GetUserOrders expand error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
			return
		}
		expanded = append(expanded, exp)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": expanded})
}

// GetOrderByID fetches one order scoped to the caller. Ownership is part of
// the lookup filter, so another user's order is indistinguishable from a
// missing one.
func GetOrderByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := findOrder(ctx, orderID, userID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("GetOrderByID lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching order")
		return
	}

	expanded, err := expandOrderFromStore(ctx, order)
	if err != nil {
		log.Println("GetOrderByID expand error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching order")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": expanded})
}

// expandOrder builds the response shape from already-resolved products.
func expandOrder(o models.Order, products map[string]models.Product) models.ExpandedOrder {
	expanded := models.ExpandedOrder{
		OrderID:       o.OrderID,
		UserID:        o.UserID,
		Items:         make([]models.ExpandedOrderItem, 0, len(o.Items)),
		Shipping:      o.Shipping,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
	for _, item := range o.Items {
		expanded.Items = append(expanded.Items, models.ExpandedOrderItem{
			Product:  products[item.ProductID],
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return expanded
}

// expandOrderFromStore resolves products fresh from the catalog. Products
// deleted since the order keep their captured quantity and price with an
// empty product record.
func expandOrderFromStore(ctx context.Context, o models.Order) (models.ExpandedOrder, error) {
	products := make(map[string]models.Product, len(o.Items))
	for _, item := range o.Items {
		product, err := findProduct(ctx, item.ProductID)
		if err != nil && err != mongo.ErrNoDocuments {
			return models.ExpandedOrder{}, err
		}
		products[item.ProductID] = product
	}
	return expandOrder(o, products), nil
}

// --- Mongo-backed store access ---

func findProductMongo(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&product)
	return product, err
}

func insertOrderMongo(ctx context.Context, order models.Order) error {
	_, err := db.OrderCollection.InsertOne(ctx, order)
	return err
}

func decrementStockMongo(ctx context.Context, id string, quantity int) error {
	filter := bson.M{"productId": id}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := db.ProductCollection.UpdateOne(ctx, filter, update)
	return err
}

func findOrderMongo(ctx context.Context, orderID, userID string) (models.Order, error) {
	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": orderID, "userId": userID}).Decode(&order)
	return order, err
}

func findUserOrdersMongo(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var userOrders []models.Order
	if err := cursor.All(ctx, &userOrders); err != nil {
		return nil, err
	}
	return userOrders, nil
}
