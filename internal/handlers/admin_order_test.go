package handlers

import (
	"testing"
	"time"

	"storefront/internal/models"
)

func TestStatusUpdateFieldsMarksPaidOnce(t *testing.T) {
	now := time.Now()

	order := models.Order{Status: models.StatusPending}
	set, err := statusUpdateFields(order, models.StatusPaid, "", now)
	if err != nil {
		t.Fatalf("pending -> paid should be allowed: %v", err)
	}
	if set["isPaid"] != true {
		t.Fatal("expected isPaid to be set")
	}
	if set["paidAt"] != now {
		t.Fatal("expected paidAt to be stamped")
	}

	// Re-applying Paid to an already paid order must not touch paidAt.
	paidAt := now.Add(-time.Hour)
	order = models.Order{Status: models.StatusPaid, IsPaid: true, PaidAt: &paidAt}
	set, err = statusUpdateFields(order, models.StatusPaid, "", now)
	if err != nil {
		t.Fatalf("re-applying the current status should be a no-op: %v", err)
	}
	if _, ok := set["paidAt"]; ok {
		t.Fatal("paidAt must only be stamped once")
	}
	if _, ok := set["isPaid"]; ok {
		t.Fatal("isPaid must not be re-set on an already paid order")
	}
}

func TestStatusUpdateFieldsRejectsInvalidTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusShipped},
		{models.StatusPending, models.StatusDelivered},
		{models.StatusPaid, models.StatusDelivered},
		{models.StatusDelivered, models.StatusPaid},
		{models.StatusCancelled, models.StatusPaid},
	}
	for _, tc := range cases {
		order := models.Order{Status: tc.from}
		if _, err := statusUpdateFields(order, tc.to, "", time.Now()); err == nil {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestStatusUpdateFieldsSetsTrackingNumber(t *testing.T) {
	order := models.Order{Status: models.StatusPaid, IsPaid: true}
	set, err := statusUpdateFields(order, models.StatusShipped, "  TRK-991  ", time.Now())
	if err != nil {
		t.Fatalf("paid -> shipped should be allowed: %v", err)
	}
	if set["trackingNumber"] != "TRK-991" {
		t.Fatalf("expected trimmed tracking number, got %v", set["trackingNumber"])
	}

	set, err = statusUpdateFields(order, models.StatusShipped, "   ", time.Now())
	if err != nil {
		t.Fatalf("paid -> shipped should be allowed: %v", err)
	}
	if _, ok := set["trackingNumber"]; ok {
		t.Fatal("blank tracking number must not be written")
	}
}
