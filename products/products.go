package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dukaan/db"
	"dukaan/models"
	"dukaan/rdx"
	"dukaan/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllProducts lists the catalog, optionally filtered by ?category=.
func GetAllProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["categoryId"] = cat
	}

	cursor, err := db.ProductCollection.Find(ctx, filter)
	if err != nil {
		log.Println("GetAllProducts Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Product
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetAllProducts cursor error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	if len(list) == 0 {
		list = []models.Product{}
	}

	utils.RespondWithData(w, http.StatusOK, "Products fetched successfully", list)
}

// GetProductByID serves the display path, backed by the redis cache.
func GetProductByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	if product, ok := rdx.GetCachedProduct(ctx, id); ok {
		utils.RespondWithData(w, http.StatusOK, "Product fetched successfully", product)
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("GetProductByID lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}

	rdx.CacheProduct(ctx, product)
	utils.RespondWithData(w, http.StatusOK, "Product fetched successfully", product)
}

// CreateProduct inserts a new catalog entry. Admin only.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		log.Println("CreateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if product.Name == "" || product.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and positive price are required")
		return
	}
	if product.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Stock cannot be negative")
		return
	}

	now := time.Now()
	product.ProductID = "prd_" + utils.GenerateRandomString(12)
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct applies a partial update to the allowed fields. Admin only.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{"name", "description", "price", "brand", "image", "stock", "categoryId"} {
		if val, ok := payload[field]; ok {
			set[field] = val
		}
	}

	res := db.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"productId": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Product
	err := res.Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("UpdateProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	rdx.InvalidateProduct(ctx, id)
	utils.RespondWithData(w, http.StatusOK, "Product updated successfully", updated)
}

// DeleteProduct removes a catalog entry. Admin only.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productId": id})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	rdx.InvalidateProduct(ctx, id)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product deleted successfully"})
}
