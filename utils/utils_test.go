package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateRandomStringLength(t *testing.T) {
	for _, n := range []int{1, 12, 32} {
		if got := GenerateRandomString(n); len(got) != n {
			t.Fatalf("expected length %d, got %d", n, len(got))
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Home Appliances":    "home-appliances",
		"  Mobile  Phones  ": "mobile-phones",
		"Crème Brûlée Kits":  "creme-brulee-kits",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRespondWithErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusBadRequest, "Not enough stock available")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body["success"])
	}
	if body["message"] != "Not enough stock available" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestRespondWithDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithData(rec, http.StatusCreated, "Order placed successfully", M{"orderId": "o1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body["success"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["orderId"] != "o1" {
		t.Fatalf("unexpected data %v", body["data"])
	}
}
