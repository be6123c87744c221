package models

import "time"

// AboutKey is the fixed id of the singleton about-page document.
const AboutKey = "main"

type About struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
