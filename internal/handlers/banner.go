package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/cache"
	"storefront/internal/models"
)

type BannerCreateRequest struct {
	Image    string `json:"image" binding:"required"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	IsActive *bool  `json:"isActive"`
}

type BannerUpdateRequest struct {
	Image    *string `json:"image"`
	Title    *string `json:"title"`
	Link     *string `json:"link"`
	IsActive *bool   `json:"isActive"`
}

/*
GET /banners
- active banners only, newest first
*/
func GetBanners(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /banners"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var banners []models.Banner
		if store.Get(ctx, cacheKeyBanners, &banners) {
			c.JSON(http.StatusOK, banners)
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("banners").Find(ctx, bson.M{"isActive": true}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		banners = make([]models.Banner, 0)
		if err := cursor.All(ctx, &banners); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		if err := store.Set(ctx, cacheKeyBanners, banners, time.Minute); err != nil {
			log.Printf("[%s] cache set failed: %v", route, err)
		}

		c.JSON(http.StatusOK, banners)
	}
}

func GetAllBanners(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/banners"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("banners").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		banners := make([]models.Banner, 0)
		if err := cursor.All(ctx, &banners); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": banners})
	}
}

func CreateBanner(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/banners"
		defer handlePanic(c, route)

		var req BannerCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		image := strings.TrimSpace(req.Image)
		if image == "" {
			respondWithError(c, http.StatusBadRequest, route, "image required")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		banner := models.Banner{
			Image:     image,
			Title:     strings.TrimSpace(req.Title),
			Link:      strings.TrimSpace(req.Link),
			IsActive:  isActive,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("banners").InsertOne(ctx, banner)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		banner.ID = result.InsertedID.(primitive.ObjectID)
		store.Invalidate(ctx, cacheKeyBanners)

		c.JSON(http.StatusCreated, banner)
	}
}

func UpdateBanner(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/banners/:id"
		defer handlePanic(c, route)

		bannerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req BannerUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{}
		if req.Image != nil {
			image := strings.TrimSpace(*req.Image)
			if image == "" {
				respondWithError(c, http.StatusBadRequest, route, "image cannot be empty")
				return
			}
			set["image"] = image
		}
		if req.Title != nil {
			set["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Link != nil {
			set["link"] = strings.TrimSpace(*req.Link)
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var banner models.Banner
		err = db.Collection("banners").FindOneAndUpdate(
			ctx,
			bson.M{"_id": bannerID},
			bson.M{"$set": set},
			mongoFindOneAndUpdateAfter(),
		).Decode(&banner)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "banner not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		store.Invalidate(ctx, cacheKeyBanners)

		c.JSON(http.StatusOK, banner)
	}
}

func DeleteBanner(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/banners/:id"
		defer handlePanic(c, route)

		bannerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("banners").DeleteOne(ctx, bson.M{"_id": bannerID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "banner not found")
			return
		}

		store.Invalidate(ctx, cacheKeyBanners)

		c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
	}
}
