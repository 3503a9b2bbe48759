package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dukaan/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID string) string {
	t.Helper()

	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestAuthenticateMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateBadFormat(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run with a malformed header")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateInvalidSignature(t *testing.T) {
	claims := &Claims{UserID: "u1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some_other_secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run with a forged token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signToken(t, "user-42")

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateJWT error: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Fatalf("expected user-42, got %q", claims.UserID)
	}
}

func TestValidateJWTRejectsEmpty(t *testing.T) {
	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestValidateJWTRequiresBearerPrefix(t *testing.T) {
	// a properly signed token without the "Bearer " prefix must not be
	// accepted by stripping its first seven characters
	token := signToken(t, "user-42")
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("expected error for raw token without Bearer prefix")
	}

	if _, err := ValidateJWT("Token abc.def.ghi"); err == nil {
		t.Fatal("expected error for non-Bearer scheme")
	}
}
