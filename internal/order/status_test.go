package order

import "testing"

func TestParse(t *testing.T) {
	for _, value := range []string{"pending", "cancelled", "delivered"} {
		s, err := Parse(value)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", value, err)
		}
		if string(s) != value {
			t.Fatalf("Parse(%q) = %q", value, s)
		}
	}

	if _, err := Parse("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty status")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, true},
		{StatusPending, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusDelivered, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransitionRejectsTerminalStates(t *testing.T) {
	// A delivered order is no longer cancellable.
	if _, err := Transition(StatusDelivered, StatusCancelled); err == nil {
		t.Fatal("expected cancelling a delivered order to fail")
	}

	next, err := Transition(StatusPending, StatusDelivered)
	if err != nil {
		t.Fatalf("pending -> delivered should be legal: %v", err)
	}
	if next != StatusDelivered {
		t.Fatalf("expected delivered, got %s", next)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StatusPending) {
		t.Fatal("pending must not be terminal")
	}
	if !IsTerminal(StatusCancelled) || !IsTerminal(StatusDelivered) {
		t.Fatal("cancelled and delivered must be terminal")
	}
}
