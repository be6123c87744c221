package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/cache"
	"storefront/internal/models"
)

type ProductCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	MRP         float64  `json:"mrp" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required"`
	Images      []string `json:"images" binding:"required,min=1"`
	Description string   `json:"description"`
	Stock       int      `json:"stock" binding:"min=0"`
	Trending    bool     `json:"trending"`
}

type ProductUpdateRequest struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	MRP         *float64  `json:"mrp"`
	Category    *string   `json:"category"`
	Images      *[]string `json:"images"`
	Description *string   `json:"description"`
	Stock       *int      `json:"stock"`
	Trending    *bool     `json:"trending"`
}

// generateSKU derives a practically unique SKU from the category prefix and
// the creation timestamp, without a centralized sequence.
func generateSKU(category string, now time.Time) string {
	prefix := make([]rune, 0, 3)
	for _, r := range category {
		if unicode.IsLetter(r) {
			prefix = append(prefix, unicode.ToUpper(r))
			if len(prefix) == 3 {
				break
			}
		}
	}
	if len(prefix) == 0 {
		prefix = []rune("GEN")
	}
	return fmt.Sprintf("%s-%d", string(prefix), now.UnixNano())
}

/*
GET /admin/products
- all products, newest first, no filters
*/
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/products"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

func CreateProduct(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		category := strings.TrimSpace(req.Category)
		if name == "" || category == "" {
			respondWithError(c, http.StatusBadRequest, route, "name and category are required")
			return
		}

		now := time.Now()
		product := models.Product{
			Name:        name,
			Price:       req.Price,
			MRP:         req.MRP,
			Category:    category,
			Images:      req.Images,
			Description: strings.TrimSpace(req.Description),
			Stock:       req.Stock,
			Rating:      0,
			NumReviews:  0,
			Reviews:     []models.Review{},
			SKU:         generateSKU(category, now),
			Trending:    req.Trending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "sku already exists")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		store.Invalidate(ctx, cacheKeyTrending)

		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			set["name"] = name
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must be greater than 0")
				return
			}
			set["price"] = *req.Price
		}
		if req.MRP != nil {
			if *req.MRP <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "mrp must be greater than 0")
				return
			}
			set["mrp"] = *req.MRP
		}
		if req.Category != nil {
			category := strings.TrimSpace(*req.Category)
			if category == "" {
				respondWithError(c, http.StatusBadRequest, route, "category cannot be empty")
				return
			}
			set["category"] = category
		}
		if req.Images != nil {
			if len(*req.Images) == 0 {
				respondWithError(c, http.StatusBadRequest, route, "at least one image is required")
				return
			}
			set["images"] = *req.Images
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stock cannot be negative")
				return
			}
			set["stock"] = *req.Stock
		}
		if req.Trending != nil {
			set["trending"] = *req.Trending
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": productID},
			bson.M{"$set": set},
			mongoFindOneAndUpdateAfter(),
		).Decode(&product)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		store.Invalidate(ctx, cacheKeyTrending)

		c.JSON(http.StatusOK, product)
	}
}

func DeleteProduct(db *mongo.Database, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": productID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		store.Invalidate(ctx, cacheKeyTrending)

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
