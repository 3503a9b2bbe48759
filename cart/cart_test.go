package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dukaan/globals"
	"dukaan/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeCartStore struct {
	products map[string]models.Product
	carts    map[string][]models.CartItem
	resets   int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		products: make(map[string]models.Product),
		carts:    make(map[string][]models.CartItem),
	}
}

func installFakeCartStore(t *testing.T, fs *fakeCartStore) {
	t.Helper()

	origFindCart := findCart
	origSaveCart := saveCart
	origResetCart := resetCart
	origFindProduct := findProduct
	t.Cleanup(func() {
		findCart = origFindCart
		saveCart = origSaveCart
		resetCart = origResetCart
		findProduct = origFindProduct
	})

	findCart = func(ctx context.Context, userID string) (models.Cart, error) {
		items, ok := fs.carts[userID]
		if !ok {
			return models.Cart{UserID: userID, Items: []models.CartItem{}}, mongo.ErrNoDocuments
		}
		return models.Cart{UserID: userID, Items: items}, nil
	}
	saveCart = func(ctx context.Context, userID string, items []models.CartItem) error {
		fs.carts[userID] = items
		return nil
	}
	resetCart = func(ctx context.Context, userID string) error {
		fs.resets++
		if _, ok := fs.carts[userID]; ok {
			fs.carts[userID] = []models.CartItem{}
		}
		return nil
	}
	findProduct = func(ctx context.Context, id string) (models.Product, error) {
		product, ok := fs.products[id]
		if !ok {
			return models.Product{}, mongo.ErrNoDocuments
		}
		return product, nil
	}
}

func cartRequest(t *testing.T, method, target, userID string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	return req.WithContext(ctx)
}

type cartResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    models.ExpandedCart `json:"data"`
}

func decodeCartResponse(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	return resp
}

func TestAddToCartCreatesThenMerges(t *testing.T) {
	fs := newFakeCartStore()
	fs.products["p1"] = models.Product{ProductID: "p1", Name: "Widget", Price: 100, Stock: 6}
	installFakeCartStore(t, fs)

	add := func(quantity int) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		body := map[string]any{"productId": "p1", "quantity": quantity}
		AddToCart(rec, cartRequest(t, http.MethodPost, "/api/cart/add", "userA", body), nil)
		return rec
	}

	rec := add(3)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeCartResponse(t, rec)
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].Quantity != 3 {
		t.Fatalf("expected one item with quantity 3, got %+v", resp.Data.Items)
	}

	// re-adding merges into one line item; the merged 8 exceeds stock 6 and
	// is accepted because only the increment is checked
	rec = add(5)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on merge, got %d: %s", rec.Code, rec.Body.String())
	}
	resp = decodeCartResponse(t, rec)
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].Quantity != 8 {
		t.Fatalf("expected merged quantity 8, got %+v", resp.Data.Items)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	fs := newFakeCartStore()
	installFakeCartStore(t, fs)

	rec := httptest.NewRecorder()
	body := map[string]any{"productId": "ghost", "quantity": 1}
	AddToCart(rec, cartRequest(t, http.MethodPost, "/api/cart/add", "userA", body), nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(fs.carts) != 0 {
		t.Fatalf("expected no cart created, got %v", fs.carts)
	}
}

func TestAddToCartInsufficientStock(t *testing.T) {
	fs := newFakeCartStore()
	fs.products["p1"] = models.Product{ProductID: "p1", Name: "Widget", Price: 100, Stock: 2}
	installFakeCartStore(t, fs)

	rec := httptest.NewRecorder()
	body := map[string]any{"productId": "p1", "quantity": 3}
	AddToCart(rec, cartRequest(t, http.MethodPost, "/api/cart/add", "userA", body), nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeCartResponse(t, rec)
	if resp.Message != "Not enough stock available" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(fs.carts) != 0 {
		t.Fatalf("expected no cart created, got %v", fs.carts)
	}
}

func TestClearCartWithoutCartSucceeds(t *testing.T) {
	fs := newFakeCartStore()
	installFakeCartStore(t, fs)

	rec := httptest.NewRecorder()
	ClearCart(rec, cartRequest(t, http.MethodDelete, "/api/cart/clear", "userA", nil), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 clearing a never-created cart, got %d", rec.Code)
	}
	resp := decodeCartResponse(t, rec)
	if !resp.Success || resp.Message != "Cart cleared successfully" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if fs.resets != 1 {
		t.Fatalf("expected one reset, got %d", fs.resets)
	}

	// the user still sees an empty cart afterwards
	rec = httptest.NewRecorder()
	GetCart(rec, cartRequest(t, http.MethodGet, "/api/cart", "userA", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp = decodeCartResponse(t, rec)
	if !resp.Success || len(resp.Data.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", resp.Data.Items)
	}
}

func TestUpdateCartItemWithoutCart(t *testing.T) {
	fs := newFakeCartStore()
	installFakeCartStore(t, fs)

	rec := httptest.NewRecorder()
	body := map[string]any{"productId": "p1", "quantity": 2}
	UpdateCartItem(rec, cartRequest(t, http.MethodPut, "/api/cart/update", "userA", body), nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decodeCartResponse(t, rec)
	if resp.Message != "Cart not found" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}
