package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/payment"
	"storefront/internal/pricing"
	"storefront/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	uploader, err := storage.New(config.AppEnv)
	if err != nil {
		log.Fatal(err)
	}

	store := cache.New(config.AppEnv.RedisAddr)
	gateway := payment.NewClient(config.AppEnv.RazorpayKeyID, config.AppEnv.RazorpayKeySecret)

	rates := pricing.Rates{
		CODHandlingFee:    config.AppEnv.CODHandlingFee,
		OnlineTaxRate:     config.AppEnv.OnlineTaxRate,
		GatewayFeePercent: config.AppEnv.GatewayFeePercent,
		GatewayTaxPercent: config.AppEnv.GatewayTaxPercent,
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(metrics.Middleware())

	r.GET("/metrics", metrics.Handler())
	r.Static("/public", "./public")

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/trending", handlers.GetTrendingProducts(db, store))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/categories", handlers.GetCategories(db, store))
	r.GET("/banners", handlers.GetBanners(db, store))
	r.GET("/about", handlers.GetAbout(db))

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth(db, config.AppEnv.JWTSecret))
	{
		auth.GET("/auth/me", handlers.GetMe(db))
		auth.PUT("/auth/me", handlers.UpdateMe(db))

		auth.GET("/wishlist", handlers.GetWishlist(db))
		auth.POST("/wishlist/:productId", handlers.AddToWishlist(db))
		auth.DELETE("/wishlist/:productId", handlers.RemoveFromWishlist(db))

		auth.POST("/products/:id/reviews", handlers.CreateProductReview(db))

		auth.POST("/orders", handlers.CreateOrder(db, rates, config.AppEnv.RazorpayKeySecret))
		auth.GET("/orders/myorders", handlers.GetMyOrders(db))
		auth.GET("/orders/:id", handlers.GetOrderByID(db))

		auth.POST("/payment/orders", handlers.CreatePaymentOrder(gateway, rates))
		auth.POST("/payment/verify", handlers.VerifyPayment(config.AppEnv.RazorpayKeySecret))
	}

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(db, config.AppEnv.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db, store))
		admin.PUT("/products/:id", handlers.UpdateProduct(db, store))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db, store))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db, store))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db, store))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db, store))

		admin.GET("/banners", handlers.GetAllBanners(db))
		admin.POST("/banners", handlers.CreateBanner(db, store))
		admin.PUT("/banners/:id", handlers.UpdateBanner(db, store))
		admin.DELETE("/banners/:id", handlers.DeleteBanner(db, store))

		admin.PUT("/about", handlers.UpsertAbout(db))

		admin.GET("/users", handlers.GetUsers(db))
		admin.GET("/users/:id", handlers.GetUserByID(db))
		admin.PUT("/users/:id", handlers.UpdateUserAdmin(db))
		admin.DELETE("/users/:id", handlers.DeleteUser(db))

		admin.GET("/orders", handlers.GetOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.POST("/upload", handlers.UploadImage(uploader))
	}

	r.Run(":" + config.AppEnv.Port)
}
