package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

// The admin rejection happens before the database is touched, so the handler
// can run against a nil database here.
func TestAddToCartRejectsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := bytes.NewBufferString(`{"productId":"` + primitive.NewObjectID().Hex() + `"}`)
	req := httptest.NewRequest("POST", "/user/cart/items", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userId", primitive.NewObjectID())
	c.Set("role", models.RoleAdmin)

	AddToCart(nil)(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin add-to-cart, got %d body %s", w.Code, w.Body.String())
	}
}

func TestCartResponseReportsTotal(t *testing.T) {
	p := primitive.NewObjectID()
	lines := []models.CartLine{{ProductID: p, Name: "P", Price: 100, Count: 3}}

	resp := cartResponse(lines)
	if resp["total"] != 300.0 {
		t.Fatalf("expected total 300, got %v", resp["total"])
	}
}
