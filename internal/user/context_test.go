package user

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCurrentUserRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	loaded := &ClubUser{Username: "ana", Role: RolePlayer}
	loaded.ID = 42
	c.Set(currentUserKey, loaded)

	got, err := CurrentUser(c)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got.ID != 42 || got.Username != "ana" {
		t.Errorf("got user %d %q, want 42 %q", got.ID, got.Username, "ana")
	}
}

func TestCurrentUserMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, err := CurrentUser(c); err == nil {
		t.Error("expected error when no user was loaded")
	}

	c.Set(currentUserKey, "not a user")
	if _, err := CurrentUser(c); err == nil {
		t.Error("expected error for unexpected context value type")
	}
}
