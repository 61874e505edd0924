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

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/order"
)

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetUsers lists every account. Password hashes never serialize.
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/users"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("users").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "users could not be fetched")
			return
		}
		defer cursor.Close(ctx)

		users := []models.User{}
		if err := cursor.All(ctx, &users); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "failed to parse users")
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// ToggleBlock flips a user's blocked flag. Blocking also revokes the user's
// refresh tokens so the forced sign-out holds server-side.
func ToggleBlock(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/users/:id/block"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		blocked := !user.IsBlocked
		if _, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
			"isBlocked": blocked,
			"updatedAt": time.Now(),
		}}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if blocked {
			revokeUserTokens(ctx, db, user.ID)
		}

		log.Printf("[ADMIN] [INFO] user %s blocked=%v", user.ID.Hex(), blocked)
		c.JSON(http.StatusOK, gin.H{
			"message":   "user updated",
			"isBlocked": blocked,
		})
	}
}

// GetUserOrders lists one user's orders for the admin dashboard. The listing
// is lazy-loaded by the client on first expand, so it is served through the
// Redis cache with a short TTL.
func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/users/:id/orders"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if orders, ok := cache.GetUserOrders(ctx, userID.Hex()); ok {
			c.JSON(http.StatusOK, orders)
			return
		}

		orders, err := findOrdersByUser(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}

		cache.SetUserOrders(ctx, userID.Hex(), orders)
		c.JSON(http.StatusOK, orders)
	}
}

// SetOrderStatus applies an admin status change through the state machine:
// pending may become cancelled or delivered, nothing leaves a terminal state.
func SetOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/users/:id/orders/:orderId/status"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid orderId")
			return
		}

		var req setStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		target, err := order.Parse(req.Status)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var o models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{
			"_id":    orderID,
			"userId": userID,
		}).Decode(&o); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		next, err := order.Transition(order.Status(o.Status), target)
		if err != nil {
			respondWithError(c, http.StatusConflict, route, err.Error())
			return
		}

		if _, err := db.Collection("orders").UpdateByID(ctx, o.ID, bson.M{"$set": bson.M{
			"status": string(next),
		}}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cache.InvalidateUserOrders(ctx, userID.Hex())

		log.Printf("[ADMIN] [INFO] order %s status -> %s", o.ID.Hex(), next)
		c.JSON(http.StatusOK, gin.H{
			"message": "order updated",
			"status":  string(next),
		})
	}
}
