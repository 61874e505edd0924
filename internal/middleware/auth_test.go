package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID primitive.ObjectID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID.Hex(),
		"role": role,
		"exp":  time.Now().Add(time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return token
}

func runGuard(t *testing.T, guard gin.HandlerFunc, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/user/cart", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	guard(c)
	return c, w
}

func TestAuthGuardValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, userID, "user")

	c, w := runGuard(t, AuthGuard(testSecret), "Bearer "+token)
	if c.IsAborted() {
		t.Fatalf("expected request to pass, got status %d body %s", w.Code, w.Body.String())
	}

	got, exists := c.Get("userId")
	if !exists || got.(primitive.ObjectID) != userID {
		t.Fatalf("expected userId %s in context, got %v", userID.Hex(), got)
	}
	if role := c.GetString("role"); role != "user" {
		t.Fatalf("expected role user in context, got %q", role)
	}
}

func TestAuthGuardMissingToken(t *testing.T) {
	c, w := runGuard(t, AuthGuard(testSecret), "")
	if !c.IsAborted() || w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthGuardMalformedHeader(t *testing.T) {
	c, w := runGuard(t, AuthGuard(testSecret), "Token abc")
	if !c.IsAborted() || w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthGuardWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))

	c, w := runGuard(t, AuthGuard(testSecret), "Bearer "+token)
	if !c.IsAborted() || w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminAuthRejectsUserRole(t *testing.T) {
	token := signToken(t, primitive.NewObjectID(), "user")

	c, w := runGuard(t, AdminAuth(testSecret), "Bearer "+token)
	if !c.IsAborted() || w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role on admin route, got %d", w.Code)
	}
}

func TestAdminAuthAllowsAdminRole(t *testing.T) {
	token := signToken(t, primitive.NewObjectID(), "admin")

	c, w := runGuard(t, AdminAuth(testSecret), "Bearer "+token)
	if c.IsAborted() {
		t.Fatalf("expected admin to pass, got status %d body %s", w.Code, w.Body.String())
	}
}
