package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dukaan/db"
	"dukaan/models"
	"dukaan/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store access is indirected through these so tests can swap in fakes.
var (
	findCart    = findCartMongo
	saveCart    = saveCartMongo
	resetCart   = resetCartMongo
	findProduct = findProductMongo
)

// AddToCart validates the product and stock, then merges the quantity into
// the user's cart, creating the cart lazily on first add. The stock check is
// add-time only; nothing is reserved.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	if payload.ProductID == "" || payload.Quantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	product, err := findProduct(ctx, payload.ProductID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("AddToCart product lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding to cart")
		return
	}

	if product.Stock < payload.Quantity {
		utils.RespondWithError(w, http.StatusBadRequest, "Not enough stock available")
		return
	}

	userCart, err := findCart(ctx, userID)
	if err != nil && err != mongo.ErrNoDocuments {
		log.Println("AddToCart cart lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding to cart")
		return
	}

	// Re-adding the same product merges quantities; the merged amount is not
	// re-checked against stock.
	userCart.Items = upsertItem(userCart.Items, payload.ProductID, payload.Quantity)

	if err := saveCart(ctx, userID, userCart.Items); err != nil {
		log.Println("AddToCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding to cart")
		return
	}

	expanded, err := expandCart(ctx, userCart)
	if err != nil {
		log.Println("AddToCart expand error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding to cart")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Item added to cart", expanded)
}

// GetCart returns the user's cart with items expanded. A user who has never
// added anything gets an empty-items cart, not an error.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userCart, err := findCart(ctx, userID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"data":    models.ExpandedCart{UserID: userID, Items: []models.ExpandedCartItem{}},
		})
		return
	}
	if err != nil {
		log.Println("GetCart lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	expanded, err := expandCart(ctx, userCart)
	if err != nil {
		log.Println("GetCart expand error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": expanded})
}

// UpdateCartItem overwrites a line item's quantity. Quantity <= 0 removes the
// line item. Stock is not re-validated here.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateCartItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userCart, err := findCart(ctx, userID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		log.Println("UpdateCartItem lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	items, found := setQuantity(userCart.Items, payload.ProductID, payload.Quantity)
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Item not in cart")
		return
	}
	userCart.Items = items

	if err := saveCart(ctx, userID, userCart.Items); err != nil {
		log.Println("UpdateCartItem save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	expanded, err := expandCart(ctx, userCart)
	if err != nil {
		log.Println("UpdateCartItem expand error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": expanded})
}

// RemoveFromCart drops a line item. Removing a product that is not in the
// cart is a no-op, not an error.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userCart, err := findCart(ctx, userID)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		log.Println("RemoveFromCart lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error removing from cart")
		return
	}

	userCart.Items = removeItem(userCart.Items, productID)

	if err := saveCart(ctx, userID, userCart.Items); err != nil {
		log.Println("RemoveFromCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error removing from cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Item removed from cart"})
}

// ClearCart resets the item list to empty. The cart document itself survives,
// and clearing a cart that was never created still succeeds.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := resetCart(ctx, userID); err != nil {
		log.Println("ClearCart update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error clearing cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Cart cleared successfully"})
}

// --- Mongo-backed store access ---

func findCartMongo(ctx context.Context, userID string) (models.Cart, error) {
	cart := models.Cart{UserID: userID, Items: []models.CartItem{}}
	err := db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	return cart, err
}

func saveCartMongo(ctx context.Context, userID string, items []models.CartItem) error {
	filter := bson.M{"userId": userID}
	update := bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}}
	opts := options.Update().SetUpsert(true)

	_, err := db.CartCollection.UpdateOne(ctx, filter, update, opts)
	return err
}

// resetCartMongo empties the item list in place. Matching no document is not
// an error, so clearing a cart that was never created still succeeds.
func resetCartMongo(ctx context.Context, userID string) error {
	filter := bson.M{"userId": userID}
	update := bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}}

	_, err := db.CartCollection.UpdateOne(ctx, filter, update)
	return err
}

func findProductMongo(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&product)
	return product, err
}

// expandCart embeds the current product record in each line item for display.
// Items whose product has since been deleted are skipped.
func expandCart(ctx context.Context, c models.Cart) (models.ExpandedCart, error) {
	expanded := models.ExpandedCart{
		UserID:    c.UserID,
		Items:     []models.ExpandedCartItem{},
		UpdatedAt: c.UpdatedAt,
	}

	for _, item := range c.Items {
		product, err := findProduct(ctx, item.ProductID)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return expanded, err
		}
		expanded.Items = append(expanded.Items, models.ExpandedCartItem{
			Product:  product,
			Quantity: item.Quantity,
		})
	}

	return expanded, nil
}
