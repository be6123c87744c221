package models

import "testing"

func TestParseOrderStatusRejectsUnknownValues(t *testing.T) {
	for _, value := range []string{"", "pending", "PAID", "Refunded", "Shipped "} {
		if _, err := ParseOrderStatus(value); err == nil {
			t.Fatalf("expected error for status %q", value)
		}
	}
	if status, err := ParseOrderStatus("Shipped"); err != nil || status != StatusShipped {
		t.Fatalf("expected StatusShipped, got %v err=%v", status, err)
	}
}

func TestCanTransitionMonotonicProgression(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{StatusPending, StatusPaid},
		{StatusPaid, StatusShipped},
		{StatusShipped, StatusDelivered},
		{StatusPending, StatusCancelled},
		{StatusPaid, StatusCancelled},
		{StatusShipped, StatusCancelled},
		{StatusPaid, StatusPaid},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	rejected := []struct{ from, to OrderStatus }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusPaid, StatusDelivered},
		{StatusShipped, StatusPaid},
		{StatusDelivered, StatusCancelled},
		{StatusDelivered, StatusShipped},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusPaid},
	}
	for _, tc := range rejected {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, status := range []OrderStatus{StatusPending, StatusPaid, StatusShipped} {
		if status.IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
	for _, status := range []OrderStatus{StatusDelivered, StatusCancelled} {
		if !status.IsTerminal() {
			t.Errorf("%s should be terminal", status)
		}
	}
}

func TestAverageRating(t *testing.T) {
	if got := AverageRating(nil); got != 0 {
		t.Fatalf("expected 0 for no reviews, got %v", got)
	}
	reviews := []Review{{Rating: 3}, {Rating: 5}, {Rating: 4}}
	if got := AverageRating(reviews); got != 4.0 {
		t.Fatalf("expected 4.0, got %v", got)
	}
}
