package products

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"dukaan/db"
	"dukaan/rdx"
	"dukaan/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "./static/productpic"

// UploadProductImage saves the uploaded image and a 300px thumbnail, then
// records both paths on the product. Admin only.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file missing")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, handler) {
		return
	}

	if err := utils.EnsureDir(productPicDir); err != nil {
		log.Println("UploadProductImage mkdir error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save file")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unreadable image data")
		return
	}

	fileID := uuid.New().String()
	imagePath := filepath.Join(productPicDir, fmt.Sprintf("%s.jpg", fileID))
	thumbPath := filepath.Join(productPicDir, fmt.Sprintf("%s_thumb.jpg", fileID))

	if err := imaging.Save(img, imagePath); err != nil {
		log.Println("UploadProductImage save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save file")
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("UploadProductImage thumbnail error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save thumbnail")
		return
	}

	imageURL := "/static/productpic/" + fmt.Sprintf("%s.jpg", fileID)
	thumbURL := "/static/productpic/" + fmt.Sprintf("%s_thumb.jpg", fileID)

	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productId": id},
		bson.M{"$set": bson.M{"image": imageURL, "thumbnail": thumbURL, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("UploadProductImage update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	rdx.InvalidateProduct(ctx, id)
	utils.RespondWithData(w, http.StatusOK, "Image uploaded", utils.M{
		"image":     imageURL,
		"thumbnail": thumbURL,
	})
}
