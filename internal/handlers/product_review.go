package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/middleware"
	"storefront/internal/models"
)

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

var errAlreadyReviewed = errors.New("product already reviewed")

// reviewChangeSet returns the update that appends review to the product and
// recomputes rating/numReviews from the resulting list. A prior review by the
// same user yields errAlreadyReviewed and no update, so a rejected attempt
// never alters the stored aggregates.
func reviewChangeSet(product models.Product, review models.Review, now time.Time) (bson.M, error) {
	for _, existing := range product.Reviews {
		if existing.User == review.User {
			return nil, errAlreadyReviewed
		}
	}

	reviews := append(append([]models.Review{}, product.Reviews...), review)
	return bson.M{
		"$push": bson.M{"reviews": review},
		"$set": bson.M{
			"rating":     models.AverageRating(reviews),
			"numReviews": len(reviews),
			"updatedAt":  now,
		},
	}, nil
}

/*
POST /products/:id/reviews
- one review per user per product
- rating and numReviews recomputed under an optimistic guard so concurrent
  reviews on the same product cannot lose updates
*/
func CreateProductReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products/:id/reviews"
		defer handlePanic(c, route)

		auth, ok := middleware.CurrentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		review := models.Review{
			User:      auth.UserID,
			Name:      auth.Name,
			Rating:    req.Rating,
			Comment:   strings.TrimSpace(req.Comment),
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		const maxAttempts = 3
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			var product models.Product
			if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
				if err == mongo.ErrNoDocuments {
					respondWithError(c, http.StatusNotFound, route, "product not found")
					return
				}
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			update, err := reviewChangeSet(product, review, time.Now())
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}

			// The numReviews guard makes the recompute an optimistic
			// compare-and-swap; a concurrent review forces a retry from a
			// fresh read.
			res, err := db.Collection("products").UpdateOne(ctx, bson.M{
				"_id":          productID,
				"numReviews":   product.NumReviews,
				"reviews.user": bson.M{"$ne": auth.UserID},
			}, update)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if res.MatchedCount == 1 {
				log.Printf("[%s] review added by %s", route, auth.UserID.Hex())
				c.JSON(http.StatusCreated, gin.H{"message": "review added"})
				return
			}

			log.Printf("[%s] concurrent review detected, attempt %d", route, attempt)
		}

		respondWithError(c, http.StatusConflict, route, "could not add review, please retry")
	}
}
