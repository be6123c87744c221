// Package pricing computes checkout totals and the gateway gross-up.
// All functions are pure; rates come in as arguments so handlers can feed
// them from config.
package pricing

import (
	"fmt"
	"math"

	"storefront/internal/models"
)

// Rates carries the fee constants used at checkout and when creating
// gateway-side payment intents.
type Rates struct {
	CODHandlingFee    float64 // flat fee added to cash-on-delivery orders
	OnlineTaxRate     float64 // percent added to online orders
	GatewayFeePercent float64 // percent the gateway deducts from the charge
	GatewayTaxPercent float64 // percent surcharge the gateway applies on its fee
}

// CheckoutTotal returns the final charge for a cart subtotal under the given
// payment method. Subtotals that are zero or negative are invalid.
func CheckoutTotal(subtotal float64, method models.PaymentMethod, rates Rates) (float64, error) {
	if subtotal <= 0 {
		return 0, fmt.Errorf("subtotal must be greater than zero")
	}
	switch method {
	case models.PaymentCOD:
		return RoundMajor(subtotal + rates.CODHandlingFee), nil
	case models.PaymentRazorpay:
		return RoundMajor(subtotal * (1 + rates.OnlineTaxRate/100)), nil
	default:
		return 0, fmt.Errorf("invalid payment method: %s", method)
	}
}

// GrossUp increases baseAmount so that after the gateway deducts its fee plus
// the tax surcharge on that fee, the merchant still nets baseAmount.
func GrossUp(baseAmount, feePercent, taxPercent float64) float64 {
	effectiveDeduction := feePercent * (1 + taxPercent/100)
	grossUpPercent := effectiveDeduction / (100 - effectiveDeduction) * 100
	return baseAmount * (1 + grossUpPercent/100)
}

// GatewayAmountMinor converts a requested receive-amount in major currency
// units into the grossed-up charge expressed in the gateway's minor unit.
func GatewayAmountMinor(baseAmount float64, rates Rates) (int64, error) {
	if baseAmount <= 0 {
		return 0, fmt.Errorf("amount must be greater than zero")
	}
	final := GrossUp(baseAmount, rates.GatewayFeePercent, rates.GatewayTaxPercent)
	minor := ToMinorUnits(final)
	if minor <= 0 {
		return 0, fmt.Errorf("amount too small")
	}
	return minor, nil
}

// ToMinorUnits converts a major-unit amount to rounded integer minor units
// (rupees to paise).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RoundMajor rounds to two decimal places for display and persistence.
func RoundMajor(amount float64) float64 {
	return math.Round(amount*100) / 100
}
