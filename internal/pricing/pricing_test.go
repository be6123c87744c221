package pricing

import (
	"math"
	"testing"

	"storefront/internal/models"
)

var testRates = Rates{
	CODHandlingFee:    20,
	OnlineTaxRate:     2.11,
	GatewayFeePercent: 2.11,
	GatewayTaxPercent: 18,
}

func TestCheckoutTotalCOD(t *testing.T) {
	for _, subtotal := range []float64{1, 99.5, 250, 10000} {
		total, err := CheckoutTotal(subtotal, models.PaymentCOD, testRates)
		if err != nil {
			t.Fatalf("CheckoutTotal(%v, COD) returned error: %v", subtotal, err)
		}
		if want := RoundMajor(subtotal + 20); total != want {
			t.Fatalf("CheckoutTotal(%v, COD) = %v, want %v", subtotal, total, want)
		}
	}
}

func TestCheckoutTotalOnline(t *testing.T) {
	for _, subtotal := range []float64{1, 99.5, 240, 10000} {
		total, err := CheckoutTotal(subtotal, models.PaymentRazorpay, testRates)
		if err != nil {
			t.Fatalf("CheckoutTotal(%v, Razorpay) returned error: %v", subtotal, err)
		}
		if want := RoundMajor(subtotal * 1.0211); total != want {
			t.Fatalf("CheckoutTotal(%v, Razorpay) = %v, want %v", subtotal, total, want)
		}
	}
}

func TestCheckoutTotalRejectsNonPositiveSubtotal(t *testing.T) {
	for _, subtotal := range []float64{0, -1, -99.99} {
		if _, err := CheckoutTotal(subtotal, models.PaymentCOD, testRates); err == nil {
			t.Fatalf("expected error for subtotal %v", subtotal)
		}
	}
}

func TestCheckoutTotalRejectsUnknownMethod(t *testing.T) {
	if _, err := CheckoutTotal(100, models.PaymentMethod("Stripe"), testRates); err == nil {
		t.Fatal("expected error for unknown payment method")
	}
}

// After the gateway deducts fee plus the tax surcharge on that fee, the
// merchant must net the original base amount within one minor unit.
func TestGrossUpRoundTrip(t *testing.T) {
	for _, base := range []float64{1, 49.5, 500, 1999.99, 125000} {
		charged := GrossUp(base, 2.11, 18)
		effectiveDeduction := 2.11 * 1.18
		net := charged * (1 - effectiveDeduction/100)
		if math.Abs(net-base) > 0.01 {
			t.Fatalf("gross-up round trip for %v: charged %v nets %v", base, charged, net)
		}
	}
}

func TestGatewayAmountMinor(t *testing.T) {
	minor, err := GatewayAmountMinor(500, testRates)
	if err != nil {
		t.Fatalf("GatewayAmountMinor returned error: %v", err)
	}
	want := ToMinorUnits(GrossUp(500, 2.11, 18))
	if minor != want {
		t.Fatalf("GatewayAmountMinor(500) = %d, want %d", minor, want)
	}
	if minor <= 50000 {
		t.Fatalf("grossed-up paise %d should exceed the bare amount 50000", minor)
	}
}

func TestGatewayAmountMinorRejectsNonPositive(t *testing.T) {
	for _, amount := range []float64{0, -10} {
		if _, err := GatewayAmountMinor(amount, testRates); err == nil {
			t.Fatalf("expected error for amount %v", amount)
		}
	}
}

func TestToMinorUnitsRounding(t *testing.T) {
	cases := map[float64]int64{
		1:       100,
		10.006:  1001,
		99.994:  9999,
		1234.56: 123456,
	}
	for amount, want := range cases {
		if got := ToMinorUnits(amount); got != want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", amount, got, want)
		}
	}
}
