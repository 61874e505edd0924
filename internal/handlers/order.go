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
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
	"storefront/internal/order"
)

// partitionOrders splits a listing into active (anything not cancelled) and
// cancelled, the way the orders page groups them.
func partitionOrders(orders []models.Order) (active, cancelled []models.Order) {
	active = []models.Order{}
	cancelled = []models.Order{}
	for _, o := range orders {
		if o.Status == string(order.StatusCancelled) {
			cancelled = append(cancelled, o)
			continue
		}
		active = append(active, o)
	}
	return active, cancelled
}

func findOrdersByUser(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]models.Order, error) {
	cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "time", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetMyOrders lists the caller's orders, partitioned active/cancelled.
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/orders"
		defer handlePanic(c, route)

		user := loadUser(c, db, route)
		if user == nil {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := findOrdersByUser(ctx, db, user.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "orders could not be fetched")
			return
		}

		active, cancelled := partitionOrders(orders)
		c.JSON(http.StatusOK, gin.H{
			"active":    active,
			"cancelled": cancelled,
		})
	}
}

// CancelOrder cancels one of the caller's own orders. Only pending orders can
// be cancelled; delivered and cancelled are terminal.
func CancelOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /user/orders/:id/cancel"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		user := loadUser(c, db, route)
		if user == nil {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var o models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{
			"_id":    orderID,
			"userId": user.ID,
		}).Decode(&o); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		next, err := order.Transition(order.Status(o.Status), order.StatusCancelled)
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

		log.Println("[ORDER] [INFO] order cancelled:", o.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}
