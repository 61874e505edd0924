package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem mirrors a cart line at the moment the order was placed. Orders are
// historical snapshots; deleting a product leaves past orders untouched.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Count     int                `bson:"count" json:"count"`
}

// Order defines the persisted order document, owned by a single user.
type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Items  []OrderItem        `bson:"items" json:"items"`
	Total  float64            `bson:"total" json:"total"`
	Status string             `bson:"status" json:"status"`
	Time   time.Time          `bson:"time" json:"time"`
}
