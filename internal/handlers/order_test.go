package handlers

import (
	"testing"

	"storefront/internal/models"
)

func TestPartitionOrders(t *testing.T) {
	orders := []models.Order{
		{Status: "pending"},
		{Status: "cancelled"},
		{Status: "delivered"},
		{Status: "cancelled"},
	}

	active, cancelled := partitionOrders(orders)
	if len(active) != 2 {
		t.Fatalf("expected 2 active orders, got %d", len(active))
	}
	if len(cancelled) != 2 {
		t.Fatalf("expected 2 cancelled orders, got %d", len(cancelled))
	}
	for _, o := range active {
		if o.Status == "cancelled" {
			t.Fatal("cancelled order ended up in the active partition")
		}
	}
}

func TestPartitionOrdersEmpty(t *testing.T) {
	active, cancelled := partitionOrders(nil)
	if active == nil || cancelled == nil {
		t.Fatal("expected empty non-nil slices so the response serializes as []")
	}
	if len(active) != 0 || len(cancelled) != 0 {
		t.Fatalf("expected empty partitions, got %d/%d", len(active), len(cancelled))
	}
}
