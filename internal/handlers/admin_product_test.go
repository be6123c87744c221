package handlers

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateSKUUsesCategoryPrefix(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sku := generateSKU("Electronics", now)
	if !strings.HasPrefix(sku, "ELE-") {
		t.Fatalf("expected ELE- prefix, got %s", sku)
	}
}

func TestGenerateSKUSkipsNonLetters(t *testing.T) {
	now := time.Now()
	sku := generateSKU("4k tv & audio", now)
	if !strings.HasPrefix(sku, "KTV-") {
		t.Fatalf("expected KTV- prefix, got %s", sku)
	}
}

func TestGenerateSKUFallsBackForEmptyCategory(t *testing.T) {
	sku := generateSKU("123", time.Now())
	if !strings.HasPrefix(sku, "GEN-") {
		t.Fatalf("expected GEN- fallback prefix, got %s", sku)
	}
}

func TestGenerateSKUDeterministicForSameInstant(t *testing.T) {
	now := time.Now()
	if generateSKU("Books", now) != generateSKU("Books", now) {
		t.Fatal("same category and timestamp must yield the same sku")
	}
	later := now.Add(time.Nanosecond)
	if generateSKU("Books", now) == generateSKU("Books", later) {
		t.Fatal("different timestamps must yield different skus")
	}
}
