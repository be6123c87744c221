package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is an optional shipping/billing snapshot stored on the account.
type Address struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// User represents the application user account. The password hash is never
// serialized in responses.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	IsAdmin      bool                 `bson:"isAdmin" json:"isAdmin"`
	Phone        string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      *Address             `bson:"address,omitempty" json:"address,omitempty"`
	Wishlist     []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
