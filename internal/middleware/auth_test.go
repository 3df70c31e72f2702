package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acebook/backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func authRequest(t *testing.T, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return w, c
}

func TestAuthMiddlewareStoresUserID(t *testing.T) {
	signed, err := token.GenerateJWT(42, "player", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w, c := authRequest(t, "Bearer "+signed)
	AuthMiddleware(testSecret)(c)

	if c.IsAborted() {
		t.Fatalf("valid token should pass, got status %d", w.Code)
	}
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		t.Fatalf("GetUserIDFromContext: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	valid, err := token.GenerateJWT(42, "player", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	wrongSecret, err := token.GenerateJWT(42, "player", "other-secret", 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic " + valid},
		{"malformed header", valid},
		{"wrong secret", "Bearer " + wrongSecret},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := authRequest(t, tt.header)
			AuthMiddleware(testSecret)(c)

			if !c.IsAborted() || w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401 abort, got aborted=%v status=%d", c.IsAborted(), w.Code)
			}
			if _, err := GetUserIDFromContext(c); err == nil {
				t.Error("no user ID should be stored on rejection")
			}
		})
	}
}
