package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"dukaan/db"
	"dukaan/globals"
	"dukaan/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticate verifies the Bearer token issued by the identity provider and
// stores the verified user id in the request context. The subject is trusted
// downstream; no further auth happens past this point.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ensureUser(r.Context(), claims)

		// Store UserID in context
		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin gates admin-only routes on the stored user role. It must run
// inside Authenticate so the user id is already in context.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID, _ := r.Context().Value(globals.UserIDKey).(string)
		if userID == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		var user models.User
		err := db.UserCollection.FindOne(ctx, bson.M{"uid": userID}).Decode(&user)
		if err != nil || user.Role != models.RoleAdmin {
			http.Error(w, "Access denied. Admins only.", http.StatusForbidden)
			return
		}

		next(w, r, ps)
	}
}

// ensureUser upserts a local user record on first authenticated request.
func ensureUser(ctx context.Context, claims *Claims) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"uid": claims.UserID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"uid":       claims.UserID,
			"email":     claims.Email,
			"name":      claims.Username,
			"role":      models.RoleUser,
			"createdAt": now,
		},
		"$set": bson.M{"updatedAt": now},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.UserCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("ensureUser upsert error:", err)
	}
}

// ValidateJWT parses a "Bearer <token>" header value and returns its claims.
func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token format")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
