package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}
}

func TestLimitBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "5.6.7.8:1234"

	var lastCode int
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler(rec, req, nil)
		lastCode = rec.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after hammering, got %d", lastCode)
	}
}

func TestLimitIsPerIP(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// exhaust one IP
	busy := httptest.NewRequest(http.MethodGet, "/", nil)
	busy.RemoteAddr = "9.9.9.9:1111"
	for i := 0; i < 50; i++ {
		handler(httptest.NewRecorder(), busy, nil)
	}

	// a different IP still gets through
	fresh := httptest.NewRequest(http.MethodGet, "/", nil)
	fresh.RemoteAddr = "10.10.10.10:2222"
	rec := httptest.NewRecorder()
	handler(rec, fresh, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected fresh IP to pass, got %d", rec.Code)
	}
}
