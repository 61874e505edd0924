// Package order models the order status lifecycle. An order starts pending and
// may move to cancelled or delivered; both are terminal.
package order

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
	StatusDelivered Status = "delivered"
)

// Parse validates an inbound status string.
func Parse(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusCancelled, StatusDelivered:
		return Status(value), nil
	default:
		return "", fmt.Errorf("unknown order status %q", value)
	}
}

// IsTerminal reports whether no further transition is allowed out of s.
func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusDelivered
}

// CanTransition reports whether moving from one status to another is legal.
// Only pending orders may change state; a no-op transition is not legal either.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusCancelled || to == StatusDelivered
}

// ErrIllegalTransition is returned when a requested status change is rejected.
type ErrIllegalTransition struct {
	From Status
	To   Status
}

func (e ErrIllegalTransition) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

// Transition validates and applies a status change.
func Transition(from, to Status) (Status, error) {
	if !CanTransition(from, to) {
		return from, ErrIllegalTransition{From: from, To: to}
	}
	return to, nil
}
