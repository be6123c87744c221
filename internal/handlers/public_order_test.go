package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

func validOrderRequest() createOrderRequest {
	return createOrderRequest{
		Items: []createOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 2},
		},
		ShippingInfo: createOrderShippingRequest{
			Name:       "Asha Verma",
			Address:    "12 MG Road",
			City:       "Pune",
			PostalCode: "411001",
			Country:    "India",
		},
		PaymentMethod: "COD",
	}
}

func TestBuildOrderFromRequestRejectsEmptyItems(t *testing.T) {
	req := validOrderRequest()
	req.Items = nil
	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for empty item list")
	}

	req.Items = []createOrderItemRequest{}
	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for empty item list")
	}
}

func TestBuildOrderFromRequestRejectsBadQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		req := validOrderRequest()
		req.Items[0].Quantity = qty
		if _, err := buildOrderFromRequest(req); err == nil {
			t.Fatalf("expected error for quantity %d", qty)
		}
	}
}

func TestBuildOrderFromRequestRejectsBadPaymentMethod(t *testing.T) {
	for _, method := range []string{"", "cod", "PayPal"} {
		req := validOrderRequest()
		req.PaymentMethod = method
		if _, err := buildOrderFromRequest(req); err == nil {
			t.Fatalf("expected error for payment method %q", method)
		}
	}
}

func TestBuildOrderFromRequestRejectsBadProductID(t *testing.T) {
	req := validOrderRequest()
	req.Items[0].ProductID = "not-an-object-id"
	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for malformed product id")
	}
}

func TestCanViewOrder(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	order := models.Order{User: owner}

	cases := []struct {
		name string
		auth middleware.AuthContext
		want bool
	}{
		{"owner", middleware.AuthContext{UserID: owner}, true},
		{"admin non-owner", middleware.AuthContext{UserID: other, IsAdmin: true}, true},
		{"other user", middleware.AuthContext{UserID: other}, false},
	}
	for _, tc := range cases {
		if got := canViewOrder(order, tc.auth); got != tc.want {
			t.Errorf("%s: canViewOrder = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBuildOrderFromRequestDefaults(t *testing.T) {
	order, err := buildOrderFromRequest(validOrderRequest())
	if err != nil {
		t.Fatalf("buildOrderFromRequest returned error: %v", err)
	}
	if order.Status != models.StatusPending {
		t.Fatalf("new order must start Pending, got %s", order.Status)
	}
	if order.IsPaid || order.PaidAt != nil {
		t.Fatal("new order must not be marked paid")
	}
	if order.PaymentMethod != models.PaymentCOD {
		t.Fatalf("unexpected payment method %s", order.PaymentMethod)
	}
	if order.ShippingInfo.City != "Pune" {
		t.Fatalf("shipping snapshot not carried, got %+v", order.ShippingInfo)
	}
}
