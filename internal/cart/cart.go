// Package cart holds the pure cart operations shared by the cart handlers and
// checkout. A cart is the slice of lines embedded in the user document.
package cart

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

// Contains reports whether the cart already holds a line for productID.
func Contains(lines []models.CartLine, productID primitive.ObjectID) bool {
	for _, line := range lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// Add appends line to the cart unless its product is already present. The
// returned bool reports whether the cart changed. Count is forced to at least 1.
func Add(lines []models.CartLine, line models.CartLine) ([]models.CartLine, bool) {
	if Contains(lines, line.ProductID) {
		return lines, false
	}
	if line.Count < 1 {
		line.Count = 1
	}
	out := make([]models.CartLine, 0, len(lines)+1)
	out = append(out, lines...)
	out = append(out, line)
	return out, true
}

// ChangeCount applies delta to the matching line's count, clamping the result
// to a minimum of 1. The returned bool reports whether the product was found.
func ChangeCount(lines []models.CartLine, productID primitive.ObjectID, delta int) ([]models.CartLine, bool) {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)

	for i := range out {
		if out[i].ProductID != productID {
			continue
		}
		count := out[i].Count + delta
		if count < 1 {
			count = 1
		}
		out[i].Count = count
		return out, true
	}
	return out, false
}

// Remove drops the line for productID. The returned bool reports whether a
// line was removed.
func Remove(lines []models.CartLine, productID primitive.ObjectID) ([]models.CartLine, bool) {
	out := make([]models.CartLine, 0, len(lines))
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		out = append(out, line)
	}
	return out, removed
}

// Total returns the sum of price times count over all lines.
func Total(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Count)
	}
	return total
}
