package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/order"
)

var errEmptyCart = errors.New("cart is empty")

// buildOrderFromCart converts a cart snapshot into a pending order.
func buildOrderFromCart(userID primitive.ObjectID, lines []models.CartLine, now time.Time) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, errEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Count:     line.Count,
		})
	}

	return models.Order{
		UserID: userID,
		Items:  items,
		Total:  cart.Total(lines),
		Status: string(order.StatusPending),
		Time:   now,
	}, nil
}

// Checkout turns the caller's cart into an order. The order insert and the
// cart clear run in one transaction so a mid-failure can neither lose nor
// duplicate cart contents.
func Checkout(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/checkout"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		user := loadUser(c, db, route)
		if user == nil {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var placed models.Order
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			// Re-read the cart inside the transaction; the view copy may be stale.
			var current models.User
			if err := db.Collection("users").FindOne(sessCtx, bson.M{"_id": user.ID}).Decode(&current); err != nil {
				return nil, err
			}

			o, err := buildOrderFromCart(current.ID, current.Cart, time.Now())
			if err != nil {
				return nil, err
			}

			res, err := db.Collection("orders").InsertOne(sessCtx, o)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				o.ID = id
			}

			if _, err := db.Collection("users").UpdateByID(sessCtx, current.ID, bson.M{"$set": bson.M{
				"cart":      []models.CartLine{},
				"updatedAt": time.Now(),
			}}); err != nil {
				return nil, err
			}

			placed = o
			return nil, nil
		})
		if err != nil {
			if errors.Is(err, errEmptyCart) {
				respondWithError(c, http.StatusBadRequest, route, "cart is empty")
				return
			}
			log.Println("[ORDER] [ERROR] checkout transaction failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order placed by user:", user.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"message": "order placed",
			"order":   placed,
		})
	}
}
