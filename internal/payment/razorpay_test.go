package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAcceptsValidSignature(t *testing.T) {
	const secret = "test_secret_key"
	sig := signPayload("order_abc123", "pay_xyz789", secret)
	if !VerifySignature("order_abc123", "pay_xyz789", sig, secret) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestVerifySignatureRejectsMutations(t *testing.T) {
	const secret = "test_secret_key"
	sig := signPayload("order_abc123", "pay_xyz789", secret)

	if VerifySignature("order_abc124", "pay_xyz789", sig, secret) {
		t.Fatal("mutated orderId must not verify")
	}
	if VerifySignature("order_abc123", "pay_xyz780", sig, secret) {
		t.Fatal("mutated paymentId must not verify")
	}
	mutated := []byte(sig)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}
	if VerifySignature("order_abc123", "pay_xyz789", string(mutated), secret) {
		t.Fatal("mutated signature must not verify")
	}
}

func TestVerifySignatureFailsClosedWithoutSecret(t *testing.T) {
	sig := signPayload("order_abc123", "pay_xyz789", "real_secret")
	if VerifySignature("order_abc123", "pay_xyz789", sig, "") {
		t.Fatal("empty secret must fail verification")
	}
	if VerifySignature("order_abc123", "pay_xyz789", sig, "wrong_secret") {
		t.Fatal("wrong secret must fail verification")
	}
}

func TestCreateOrderPostsMinorUnits(t *testing.T) {
	var got createOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Errorf("expected basic auth with gateway credentials, got %q/%q", user, pass)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_abc123",
			Amount:   got.Amount,
			Currency: got.Currency,
			Receipt:  got.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := NewClient("key_id", "key_secret").WithBaseURL(server.URL)
	order, err := client.CreateOrder(context.Background(), 52548, "INR", "rcpt_1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if got.Amount != 52548 || got.Currency != "INR" {
		t.Fatalf("gateway received amount=%d currency=%s", got.Amount, got.Currency)
	}
	if order.ID != "order_abc123" || order.Status != "created" {
		t.Fatalf("unexpected gateway order: %+v", order)
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	client := NewClient("key_id", "key_secret")
	if _, err := client.CreateOrder(context.Background(), 0, "INR", "rcpt"); err == nil {
		t.Fatal("expected error for zero amount")
	}

	unconfigured := NewClient("", "")
	if _, err := unconfigured.CreateOrder(context.Background(), 100, "INR", "rcpt"); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestCreateOrderSurfacesGatewayErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("key_id", "bad_secret").WithBaseURL(server.URL)
	if _, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt"); err == nil {
		t.Fatal("expected error for gateway 401")
	}
}
