package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"dukaan/models"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

const productCacheTTL = 5 * time.Minute

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

func productKey(id string) string {
	return "product:" + id
}

// GetCachedProduct returns the cached product, or false on miss. Used only on
// the public display path; order validation reads Mongo directly.
func GetCachedProduct(ctx context.Context, id string) (models.Product, bool) {
	var product models.Product

	val, err := Conn.Get(ctx, productKey(id)).Result()
	if err != nil {
		return product, false
	}
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		log.Println("Cached product unmarshal error:", err)
		return product, false
	}
	return product, true
}

func CacheProduct(ctx context.Context, product models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := Conn.Set(ctx, productKey(product.ProductID), data, productCacheTTL).Err(); err != nil {
		log.Println("Redis Set error:", err)
	}
}

// InvalidateProduct drops the cached copy after any catalog mutation,
// including stock decrements during order placement.
func InvalidateProduct(ctx context.Context, id string) {
	if err := Conn.Del(ctx, productKey(id)).Err(); err != nil {
		log.Println("Redis Del error:", err)
	}
}
