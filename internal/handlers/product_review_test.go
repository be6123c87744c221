package handlers

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func TestReviewChangeSetRejectsSecondReviewBySameUser(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{
		Rating:     4,
		NumReviews: 1,
		Reviews: []models.Review{
			{User: userID, Rating: 4},
		},
	}

	update, err := reviewChangeSet(product, models.Review{User: userID, Rating: 1}, time.Now())
	if !errors.Is(err, errAlreadyReviewed) {
		t.Fatalf("expected errAlreadyReviewed, got %v", err)
	}
	if update != nil {
		t.Fatalf("rejected attempt must produce no update, got %v", update)
	}
	// The product document is untouched by a rejected attempt.
	if product.Rating != 4 || product.NumReviews != 1 {
		t.Fatalf("aggregates changed on rejection: rating=%v numReviews=%d", product.Rating, product.NumReviews)
	}
}

func TestReviewChangeSetRecomputesAggregates(t *testing.T) {
	product := models.Product{
		Rating:     4.5,
		NumReviews: 2,
		Reviews: []models.Review{
			{User: primitive.NewObjectID(), Rating: 4},
			{User: primitive.NewObjectID(), Rating: 5},
		},
	}
	review := models.Review{User: primitive.NewObjectID(), Rating: 3}

	update, err := reviewChangeSet(product, review, time.Now())
	if err != nil {
		t.Fatalf("reviewChangeSet returned error: %v", err)
	}

	set := update["$set"].(bson.M)
	if set["rating"] != 4.0 {
		t.Fatalf("expected rating 4.0, got %v", set["rating"])
	}
	if set["numReviews"] != 3 {
		t.Fatalf("expected numReviews 3, got %v", set["numReviews"])
	}
	if update["$push"].(bson.M)["reviews"] != review {
		t.Fatal("expected the new review to be pushed")
	}
}

func TestReviewChangeSetFirstReview(t *testing.T) {
	review := models.Review{User: primitive.NewObjectID(), Rating: 5}

	update, err := reviewChangeSet(models.Product{}, review, time.Now())
	if err != nil {
		t.Fatalf("reviewChangeSet returned error: %v", err)
	}

	set := update["$set"].(bson.M)
	if set["rating"] != 5.0 {
		t.Fatalf("expected rating 5.0, got %v", set["rating"])
	}
	if set["numReviews"] != 1 {
		t.Fatalf("expected numReviews 1, got %v", set["numReviews"])
	}
}
