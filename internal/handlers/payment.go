package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/payment"
	"storefront/internal/pricing"
)

type PaymentOrderRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type PaymentVerifyRequest struct {
	RazorpayOrderID string `json:"razorpayOrderId" binding:"required"`
	PaymentID       string `json:"paymentId" binding:"required"`
	Signature       string `json:"signature" binding:"required"`
}

/*
POST /payment/orders
- amount is the receive-amount in major units; the gateway is charged the
  grossed-up figure in paise so fees net out
*/
func CreatePaymentOrder(client *payment.Client, rates pricing.Rates) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payment/orders"
		defer handlePanic(c, route)

		var req PaymentOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		amountMinor, err := pricing.GatewayAmountMinor(req.Amount, rates)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixNano())
		order, err := client.CreateOrder(c.Request.Context(), amountMinor, "INR", receipt)
		if err != nil {
			log.Printf("[%s] gateway order failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "payment gateway error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order":   order,
		})
	}
}

/*
POST /payment/verify
- a failed verification is an expected outcome, reported as success=false
  rather than an error status
*/
func VerifyPayment(gatewaySecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payment/verify"
		defer handlePanic(c, route)

		var req PaymentVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		verified := payment.VerifySignature(req.RazorpayOrderID, req.PaymentID, req.Signature, gatewaySecret)
		if !verified {
			log.Printf("[%s] signature mismatch for gateway order %s", route, req.RazorpayOrderID)
		}

		c.JSON(http.StatusOK, gin.H{"success": verified})
	}
}
