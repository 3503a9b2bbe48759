package categories

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

// CreateCategory inserts a category with a slug derived from its name. Admin only.
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Println("CreateCategory decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if category.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name required")
		return
	}

	now := time.Now()
	category.CategoryID = "cat_" + utils.GenerateRandomString(12)
	category.Slug = utils.Slugify(category.Name)
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := db.CategoryCollection.InsertOne(ctx, category); err != nil {
		log.Println("CreateCategory InsertOne error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error creating category")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, "Category created", category)
}

func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoryCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("GetCategories Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Category
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetCategories cursor error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	if len(list) == 0 {
		list = []models.Category{}
	}

	utils.RespondWithData(w, http.StatusOK, "Categories fetched", list)
}

func GetCategoryByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	var category models.Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryId": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Println("GetCategoryByID lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching category")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Category fetched", category)
}

// UpdateCategory applies a partial update; renaming refreshes the slug. Admin only.
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateCategory decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{"name", "description", "parentId"} {
		if val, ok := payload[field]; ok {
			set[field] = val
		}
	}
	if name, ok := payload["name"].(string); ok && name != "" {
		set["slug"] = utils.Slugify(name)
	}

	res := db.CategoryCollection.FindOneAndUpdate(ctx,
		bson.M{"categoryId": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Category
	err := res.Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Println("UpdateCategory error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating category")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Category updated", updated)
}

func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	res, err := db.CategoryCollection.DeleteOne(ctx, bson.M{"categoryId": id})
	if err != nil {
		log.Println("DeleteCategory error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting category")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Category deleted"})
}
