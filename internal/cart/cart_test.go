package cart

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func line(id primitive.ObjectID, price float64, count int) models.CartLine {
	return models.CartLine{ProductID: id, Name: "p", Price: price, Count: count}
}

func TestTotalSumsPriceTimesCount(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	lines := []models.CartLine{line(a, 100, 3), line(b, 49.5, 2)}
	if got := Total(lines); got != 399 {
		t.Fatalf("expected total 399, got %v", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("expected empty cart total 0, got %v", got)
	}
}

func TestAddIsIdempotentOnProduct(t *testing.T) {
	a := primitive.NewObjectID()

	lines, added := Add(nil, line(a, 100, 1))
	if !added || len(lines) != 1 {
		t.Fatalf("expected first add to append, got added=%v len=%d", added, len(lines))
	}

	again, added := Add(lines, line(a, 100, 1))
	if added {
		t.Fatal("expected second add of the same product to be a no-op")
	}
	if len(again) != 1 || again[0].Count != 1 {
		t.Fatalf("expected cart unchanged, got %+v", again)
	}
	if Total(again) != 100 {
		t.Fatalf("expected total 100 after duplicate add, got %v", Total(again))
	}
}

func TestAddForcesMinimumCount(t *testing.T) {
	a := primitive.NewObjectID()

	lines, _ := Add(nil, line(a, 10, 0))
	if lines[0].Count != 1 {
		t.Fatalf("expected count forced to 1, got %d", lines[0].Count)
	}
}

func TestChangeCountClampsAtOne(t *testing.T) {
	a := primitive.NewObjectID()
	lines := []models.CartLine{line(a, 100, 2)}

	tests := []struct {
		delta int
		want  int
	}{
		{-1, 1},
		{-100, 1},
		{1, 3},
		{5, 7},
	}
	for _, tt := range tests {
		out, found := ChangeCount(lines, a, tt.delta)
		if !found {
			t.Fatalf("delta %d: product not found", tt.delta)
		}
		if out[0].Count != tt.want {
			t.Fatalf("delta %d: expected count %d, got %d", tt.delta, tt.want, out[0].Count)
		}
		lines = out
	}
}

func TestChangeCountUnknownProduct(t *testing.T) {
	a := primitive.NewObjectID()
	lines := []models.CartLine{line(a, 100, 1)}

	out, found := ChangeCount(lines, primitive.NewObjectID(), 1)
	if found {
		t.Fatal("expected unknown product to report not found")
	}
	if len(out) != 1 || out[0].Count != 1 {
		t.Fatalf("expected cart unchanged, got %+v", out)
	}
}

func TestChangeCountDoesNotMutateInput(t *testing.T) {
	a := primitive.NewObjectID()
	lines := []models.CartLine{line(a, 100, 1)}

	_, _ = ChangeCount(lines, a, 5)
	if lines[0].Count != 1 {
		t.Fatalf("expected input slice untouched, got count %d", lines[0].Count)
	}
}

func TestRemove(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	lines := []models.CartLine{line(a, 100, 1), line(b, 50, 2)}

	out, removed := Remove(lines, a)
	if !removed || len(out) != 1 || out[0].ProductID != b {
		t.Fatalf("expected only b to remain, got removed=%v %+v", removed, out)
	}

	out, removed = Remove(out, a)
	if removed {
		t.Fatal("expected second remove to be a no-op")
	}
	if Total(out) != 100 {
		t.Fatalf("expected total 100, got %v", Total(out))
	}
}

func TestCartScenario(t *testing.T) {
	// New user: empty cart. Adds product P (price 100) twice, then sets the
	// count to 3.
	p := primitive.NewObjectID()

	lines, added := Add(nil, line(p, 100, 1))
	if !added {
		t.Fatal("expected first add to succeed")
	}
	lines, added = Add(lines, line(p, 100, 1))
	if added {
		t.Fatal("expected duplicate add to be rejected")
	}
	if len(lines) != 1 || lines[0].Count != 1 || Total(lines) != 100 {
		t.Fatalf("expected one line count=1 total=100, got %+v total=%v", lines, Total(lines))
	}

	lines, _ = ChangeCount(lines, p, 2)
	if lines[0].Count != 3 || Total(lines) != 300 {
		t.Fatalf("expected count=3 total=300, got count=%d total=%v", lines[0].Count, Total(lines))
	}
}
