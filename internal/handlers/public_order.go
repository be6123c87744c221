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
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/payment"
	"storefront/internal/pricing"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string `json:"product" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type createOrderShippingRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Landmark   string `json:"landmark"`
}

type createOrderPaymentResult struct {
	RazorpayOrderID string `json:"razorpayOrderId"`
	PaymentID       string `json:"paymentId"`
	Signature       string `json:"signature"`
}

type createOrderRequest struct {
	Items         []createOrderItemRequest   `json:"items"`
	ShippingInfo  createOrderShippingRequest `json:"shippingInfo" binding:"required"`
	PaymentMethod string                     `json:"paymentMethod" binding:"required"`
	PaymentResult *createOrderPaymentResult  `json:"paymentResult"`
}

/* =========================
   SENTINEL ERRORS
========================= */

type outOfStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

type productNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

/* =========================
   VALIDATION
========================= */

// buildOrderFromRequest validates the request shape and produces the order
// skeleton. Item snapshots and prices are filled in from the catalog inside
// the creation transaction.
func buildOrderFromRequest(req createOrderRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return models.Order{}, errors.New("invalid product id")
		}
		if item.Quantity <= 0 {
			return models.Order{}, errors.New("quantity must be greater than zero")
		}
		items = append(items, models.OrderItem{
			Product:  productID,
			Quantity: item.Quantity,
		})
	}

	order := models.Order{
		Items: items,
		ShippingInfo: models.ShippingInfo{
			Name:       strings.TrimSpace(req.ShippingInfo.Name),
			Address:    strings.TrimSpace(req.ShippingInfo.Address),
			City:       strings.TrimSpace(req.ShippingInfo.City),
			PostalCode: strings.TrimSpace(req.ShippingInfo.PostalCode),
			Country:    strings.TrimSpace(req.ShippingInfo.Country),
			Landmark:   strings.TrimSpace(req.ShippingInfo.Landmark),
		},
		PaymentMethod: method,
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
	}

	return order, nil
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database, rates pricing.Rates, gatewaySecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		auth, ok := middleware.CurrentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := buildOrderFromRequest(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		order.User = auth.UserID

		// Online payments completed before order creation carry a gateway
		// confirmation; it must verify before the order is marked paid.
		if order.PaymentMethod == models.PaymentRazorpay && req.PaymentResult != nil {
			pr := req.PaymentResult
			if !payment.VerifySignature(pr.RazorpayOrderID, pr.PaymentID, pr.Signature, gatewaySecret) {
				log.Printf("[%s] payment verification failed for user %s", route, auth.UserID.Hex())
				respondWithError(c, http.StatusBadRequest, route, "payment verification failed")
				return
			}
			now := time.Now()
			order.IsPaid = true
			order.PaidAt = &now
			order.Status = models.StatusPaid
			order.PaymentResult = &models.PaymentResult{
				RazorpayOrderID: pr.RazorpayOrderID,
				PaymentID:       pr.PaymentID,
				Signature:       pr.Signature,
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var orderID primitive.ObjectID
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			calculatedItems := make([]models.OrderItem, 0, len(order.Items))
			subtotal := 0.0

			for _, item := range order.Items {
				var product models.Product
				err := db.Collection("products").FindOne(
					sessCtx,
					bson.M{"_id": item.Product},
				).Decode(&product)
				if err == mongo.ErrNoDocuments {
					return nil, productNotFoundError{ProductID: item.Product}
				}
				if err != nil {
					return nil, err
				}

				if product.Stock < item.Quantity {
					return nil, outOfStockError{
						ProductID: item.Product,
						Available: product.Stock,
						Requested: item.Quantity,
					}
				}

				image := ""
				if len(product.Images) > 0 {
					image = product.Images[0]
				}

				// Snapshot name, image, and price so later catalog edits
				// never alter this order.
				calculatedItems = append(calculatedItems, models.OrderItem{
					Product:  item.Product,
					Name:     product.Name,
					Quantity: item.Quantity,
					Image:    image,
					Price:    product.Price,
				})
				subtotal += product.Price * float64(item.Quantity)

				filter := bson.M{
					"_id":   item.Product,
					"stock": bson.M{"$gte": item.Quantity},
				}
				update := bson.M{"$inc": bson.M{"stock": -item.Quantity}}

				res, err := db.Collection("products").UpdateOne(sessCtx, filter, update)
				if err != nil {
					return nil, err
				}
				if res.MatchedCount == 0 {
					return nil, outOfStockError{
						ProductID: item.Product,
						Available: product.Stock,
						Requested: item.Quantity,
					}
				}
			}

			total, err := pricing.CheckoutTotal(subtotal, order.PaymentMethod, rates)
			if err != nil {
				return nil, err
			}

			order.Items = calculatedItems
			order.ItemsPrice = pricing.RoundMajor(subtotal)
			order.ShippingPrice = 0
			order.TaxPrice = pricing.RoundMajor(total - order.ItemsPrice)
			order.TotalPrice = total

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				orderID = id
			}
			return nil, nil
		})
		if err != nil {
			var stockErr outOfStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "insufficient stock",
					"productId": stockErr.ProductID.Hex(),
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
				return
			}
			var notFoundErr productNotFoundError
			if errors.As(err, &notFoundErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product not found",
					"productId": notFoundErr.ProductID.Hex(),
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !orderID.IsZero() {
			order.ID = orderID
		}

		log.Printf("[%s] order %s created for user %s (%s)", route, order.ID.Hex(), auth.UserID.Hex(), order.Status)
		c.JSON(http.StatusCreated, order)
	}
}

/* =========================
   READ ORDERS
========================= */

/*
GET /orders/myorders
- requester's own orders, newest first
*/
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/myorders"
		defer handlePanic(c, route)

		auth, ok := middleware.CurrentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"user": auth.UserID}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

/*
GET /orders/:id
- owner or admin only
*/
// canViewOrder restricts order reads to the order's owner or an admin.
func canViewOrder(order models.Order, auth middleware.AuthContext) bool {
	return auth.IsAdmin || order.User == auth.UserID
}

func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		auth, ok := middleware.CurrentUser(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !canViewOrder(order, auth) {
			log.Printf("[%s] user %s denied access to order %s", route, auth.UserID.Hex(), orderID.Hex())
			respondWithError(c, http.StatusUnauthorized, route, "not authorized to view this order")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
