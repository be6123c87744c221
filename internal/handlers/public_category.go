package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/cache"
	"storefront/internal/models"
)

func GetCategories(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var categories []models.Category
		if store.Get(ctx, cacheKeyCategories, &categories) {
			c.JSON(http.StatusOK, categories)
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "name", Value: 1}})

		cursor, err := db.Collection("categories").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		categories = make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		if err := store.Set(ctx, cacheKeyCategories, categories, time.Minute); err != nil {
			log.Printf("[%s] cache set failed: %v", route, err)
		}

		log.Printf("[%s] returning %d categories", route, len(categories))
		c.JSON(http.StatusOK, categories)
	}
}
