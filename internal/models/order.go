package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "COD"
	PaymentRazorpay PaymentMethod = "Razorpay"
)

func ParsePaymentMethod(value string) (PaymentMethod, error) {
	switch PaymentMethod(value) {
	case PaymentCOD, PaymentRazorpay:
		return PaymentMethod(value), nil
	default:
		return "", fmt.Errorf("invalid payment method: %s", value)
	}
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "Paid"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

func ParseOrderStatus(value string) (OrderStatus, error) {
	switch OrderStatus(value) {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(value), nil
	default:
		return "", fmt.Errorf("invalid order status: %s", value)
	}
}

// IsTerminal reports whether no further transitions are allowed out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition enforces monotonic progression through the order lifecycle:
// Pending → Paid → Shipped → Delivered, with Cancelled reachable from any
// non-terminal state. Re-applying the current status is a no-op and allowed.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusPaid
	case StatusPaid:
		return to == StatusShipped
	case StatusShipped:
		return to == StatusDelivered
	}
	return false
}

// OrderItem is a snapshot of the product at purchase time. Later catalog
// edits must not alter historical orders.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price"`
}

type ShippingInfo struct {
	Name       string `bson:"name" json:"name"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
	Landmark   string `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

// PaymentResult holds the gateway confirmation attached to online orders.
type PaymentResult struct {
	RazorpayOrderID string `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	PaymentID       string `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Signature       string `bson:"signature,omitempty" json:"signature,omitempty"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Items          []OrderItem        `bson:"items" json:"items"`
	ShippingInfo   ShippingInfo       `bson:"shippingInfo" json:"shippingInfo"`
	ItemsPrice     float64            `bson:"itemsPrice" json:"itemsPrice"`
	TaxPrice       float64            `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice  float64            `bson:"shippingPrice" json:"shippingPrice"`
	TotalPrice     float64            `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod  PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentResult  *PaymentResult     `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	IsPaid         bool               `bson:"isPaid" json:"isPaid"`
	PaidAt         *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	Status         OrderStatus        `bson:"status" json:"status"`
	TrackingNumber string             `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
