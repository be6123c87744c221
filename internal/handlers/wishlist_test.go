package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/middleware"
)

func wishlistTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetCurrentUser(c, middleware.AuthContext{
			UserID: primitive.NewObjectID(),
			Name:   "Asha Verma",
			Email:  "asha@example.com",
		})
	})
	r.POST("/wishlist/:productId", AddToWishlist(nil))
	return r
}

func TestAddToWishlistRejectsMalformedPathID(t *testing.T) {
	r := wishlistTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/wishlist/not-a-hex", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed path id, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "invalid productId") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestAddToWishlistReadsIDFromPath(t *testing.T) {
	r := wishlistTestRouter()

	// An empty body must not matter: the product id travels in the path.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/wishlist/"+primitive.NewObjectID().Hex(), strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code == http.StatusBadRequest {
		t.Fatalf("valid path id must clear request validation, got 400: %s", w.Body.String())
	}
}
