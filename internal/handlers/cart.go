package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/cart"
	"storefront/internal/models"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type changeCountRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

func cartResponse(lines []models.CartLine) gin.H {
	return gin.H{
		"cart":  lines,
		"total": cart.Total(lines),
	}
}

func persistCart(c *gin.Context, db *mongo.Database, route string, userID primitive.ObjectID, lines []models.CartLine) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"cart":      lines,
		"updatedAt": time.Now(),
	}}); err != nil {
		log.Println("[CART] [ERROR] cart update failed:", err)
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return false
	}
	return true
}

// GetCart returns the caller's cart lines and the recomputed total.
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/cart"
		defer handlePanic(c, route)

		user := loadUser(c, db, route)
		if user == nil {
			return
		}

		c.JSON(http.StatusOK, cartResponse(user.Cart))
	}
}

// AddToCart snapshots the product into the cart with count 1. Adding a product
// that is already present changes nothing; admins are always rejected.
func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/cart/items"
		defer handlePanic(c, route)

		if currentRole(c) == models.RoleAdmin {
			respondWithError(c, http.StatusForbidden, route, "admins cannot add products to the cart")
			return
		}

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		user := loadUser(c, db, route)
		if user == nil {
			return
		}

		if cart.Contains(user.Cart, productID) {
			c.JSON(http.StatusConflict, gin.H{"error": "already in cart"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		lines, added := cart.Add(user.Cart, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Count:     1,
		})
		if !added {
			c.JSON(http.StatusConflict, gin.H{"error": "already in cart"})
			return
		}

		if !persistCart(c, db, route, user.ID, lines) {
			return
		}

		log.Printf("[CART] [INFO] %s added to cart of %s", product.ID.Hex(), user.ID.Hex())
		c.JSON(http.StatusOK, cartResponse(lines))
	}
}

// ChangeCartCount applies a delta to a line's count, clamped to a minimum of 1.
func ChangeCartCount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /user/cart/items/:productId"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		var req changeCountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if *req.Delta == 0 {
			respondWithError(c, http.StatusBadRequest, route, "delta must not be zero")
			return
		}

		user := loadUser(c, db, route)
		if user == nil {
			return
		}

		lines, found := cart.ChangeCount(user.Cart, productID, *req.Delta)
		if !found {
			respondWithError(c, http.StatusNotFound, route, "product not in cart")
			return
		}

		if !persistCart(c, db, route, user.ID, lines) {
			return
		}

		c.JSON(http.StatusOK, cartResponse(lines))
	}
}

// RemoveFromCart drops a line from the cart.
func RemoveFromCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/cart/items/:productId"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		user := loadUser(c, db, route)
		if user == nil {
			return
		}

		lines, removed := cart.Remove(user.Cart, productID)
		if !removed {
			respondWithError(c, http.StatusNotFound, route, "product not in cart")
			return
		}

		if !persistCart(c, db, route, user.ID, lines) {
			return
		}

		log.Printf("[CART] [INFO] %s removed from cart of %s", productID.Hex(), user.ID.Hex())
		c.JSON(http.StatusOK, cartResponse(lines))
	}
}
