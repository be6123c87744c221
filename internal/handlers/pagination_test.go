package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("expected defaults 1/20, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsRejectsBadValues(t *testing.T) {
	cases := []struct{ page, limit string }{
		{"0", ""},
		{"-1", ""},
		{"abc", ""},
		{"", "0"},
		{"", "-5"},
		{"", "abc"},
	}
	for _, tc := range cases {
		if _, _, err := parsePaginationParams(tc.page, tc.limit); err == nil {
			t.Errorf("expected error for page=%q limit=%q", tc.page, tc.limit)
		}
	}
}

func TestParsePaginationParamsCapsLimit(t *testing.T) {
	_, limit, err := parsePaginationParams("1", "100000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, limit)
	}

	_, limit, err = parsePaginationParams("2", "50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 50 {
		t.Fatalf("expected limit 50 to pass through, got %d", limit)
	}
}
