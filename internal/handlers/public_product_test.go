package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildCatalogFilterEmpty(t *testing.T) {
	filter := buildCatalogFilter("", "  ")
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestBuildCatalogFilterKeyword(t *testing.T) {
	filter := buildCatalogFilter("head phone", "")
	name, ok := filter["name"].(bson.M)
	if !ok {
		t.Fatalf("expected name filter, got %v", filter)
	}
	if name["$options"] != "i" {
		t.Fatalf("keyword match must be case-insensitive, got %v", name)
	}
	if name["$regex"] != "head phone" {
		t.Fatalf("unexpected keyword regex: %v", name["$regex"])
	}
}

func TestBuildCatalogFilterCategoryNormalizesHyphens(t *testing.T) {
	filter := buildCatalogFilter("", "home-appliances")
	category, ok := filter["category"].(bson.M)
	if !ok {
		t.Fatalf("expected category filter, got %v", filter)
	}
	if category["$regex"] != "^home appliances$" {
		t.Fatalf("expected whole-string normalized match, got %v", category["$regex"])
	}
	if category["$options"] != "i" {
		t.Fatal("category match must be case-insensitive")
	}
}

func TestBuildCatalogFilterEscapesRegexMeta(t *testing.T) {
	filter := buildCatalogFilter("100% (cotton)", "")
	name := filter["name"].(bson.M)
	if name["$regex"] == "100% (cotton)" {
		t.Fatal("regex metacharacters must be escaped")
	}
}
