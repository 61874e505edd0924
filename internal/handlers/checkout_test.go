package handlers

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestBuildOrderFromCartSnapshotsLinesAndTotal(t *testing.T) {
	userID := primitive.NewObjectID()
	p := primitive.NewObjectID()
	now := time.Now()

	lines := []models.CartLine{{ProductID: p, Name: "P", Price: 100, Count: 3}}

	o, err := buildOrderFromCart(userID, lines, now)
	if err != nil {
		t.Fatalf("buildOrderFromCart returned error: %v", err)
	}

	if o.Total != 300 {
		t.Fatalf("expected total 300, got %v", o.Total)
	}
	if o.Status != "pending" {
		t.Fatalf("expected status pending, got %s", o.Status)
	}
	if o.UserID != userID || !o.Time.Equal(now) {
		t.Fatalf("expected owner and time carried over, got %+v", o)
	}
	if len(o.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(o.Items))
	}
	item := o.Items[0]
	if item.ProductID != p || item.Name != "P" || item.Price != 100 || item.Count != 3 {
		t.Fatalf("expected item to mirror the cart line, got %+v", item)
	}
}

func TestBuildOrderFromCartRejectsEmptyCart(t *testing.T) {
	_, err := buildOrderFromCart(primitive.NewObjectID(), nil, time.Now())
	if !errors.Is(err, errEmptyCart) {
		t.Fatalf("expected errEmptyCart, got %v", err)
	}

	_, err = buildOrderFromCart(primitive.NewObjectID(), []models.CartLine{}, time.Now())
	if !errors.Is(err, errEmptyCart) {
		t.Fatalf("expected errEmptyCart for empty slice, got %v", err)
	}
}
